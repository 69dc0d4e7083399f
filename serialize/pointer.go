package serialize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lattice-tools/resourceschema/schemaerrors"
)

// ParsePointer splits an RFC 6901 JSON Pointer into its unescaped path
// segments. An empty pointer resolves to the document root (no segments).
func ParsePointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if pointer[0] != '/' {
		return nil, schemaerrors.InvalidJSONPointer(pointer, errors.New("pointer must start with '/'"))
	}
	raw := strings.Split(pointer[1:], "/")
	segments := make([]string, len(raw))
	for i, s := range raw {
		s = strings.ReplaceAll(s, "~1", "/")
		s = strings.ReplaceAll(s, "~0", "~")
		segments[i] = s
	}
	return segments, nil
}

// Navigate resolves pointer within root and returns the node it locates,
// without creating anything.
func Navigate(root *Node, pointer string) (*Node, error) {
	segments, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	current := root
	for _, seg := range segments {
		if current.Kind != KindObject {
			return nil, schemaerrors.InvalidJSONPointer(pointer, fmt.Errorf("segment %q traverses a non-object node", seg))
		}
		next, ok := current.Get(seg)
		if !ok {
			return nil, schemaerrors.InvalidJSONPointer(pointer, fmt.Errorf("segment %q does not exist", seg))
		}
		current = next
	}
	return current, nil
}

// Add implements the JSON-add mapper's patch operation (spec.md §4.E):
// navigate pointer within root, creating any missing intermediate objects,
// and overwrite the final segment with value.
func Add(root *Node, pointer string, value *Node) error {
	segments, err := ParsePointer(pointer)
	if err != nil {
		return err
	}
	if len(segments) == 0 {
		return schemaerrors.InvalidJSONPointer(pointer, errors.New("pointer must reference a location within the document"))
	}

	current := root
	for _, seg := range segments[:len(segments)-1] {
		if current.Kind != KindObject {
			return schemaerrors.InvalidJSONPointer(pointer, fmt.Errorf("segment %q traverses a non-object node", seg))
		}
		next, ok := current.Get(seg)
		if !ok {
			next = ObjectNode()
			current.Set(seg, next)
		}
		current = next
	}

	last := segments[len(segments)-1]
	if current.Kind != KindObject {
		return schemaerrors.InvalidJSONPointer(pointer, fmt.Errorf("cannot set %q on a non-object node", last))
	}
	current.Set(last, value)
	return nil
}
