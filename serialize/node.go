// Package serialize implements the resource schema document's serialized
// tree form: an ordered object/array/scalar node type, conversion from a
// built schemadoc.ResourceSchema, and RFC 6901 JSON Pointer parsing and
// navigation, used by the mapper pipeline's JSON-add post-processing
// patches.
package serialize

// Kind discriminates which value a Node holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Node is a minimal ordered-tree JSON value. Object keys preserve insertion
// order, since spec.md §4.F requires definitions/properties/handlers (and,
// transitively, anything folded under them) to serialize in the order they
// were inserted — something neither a bare Go map nor encoding/json's
// map[string]interface{} gives us, and which must also support in-place
// mutation for the JSON-add mapper.
type Node struct {
	Kind   Kind
	Bool   bool
	Number float64
	String string
	Array  []*Node

	keys   []string
	fields map[string]*Node
}

// Null returns a null-valued Node.
func Null() *Node { return &Node{Kind: KindNull} }

// BoolNode returns a boolean-valued Node.
func BoolNode(v bool) *Node { return &Node{Kind: KindBool, Bool: v} }

// NumberNode returns a numeric-valued Node.
func NumberNode(v float64) *Node { return &Node{Kind: KindNumber, Number: v} }

// StringNode returns a string-valued Node.
func StringNode(v string) *Node { return &Node{Kind: KindString, String: v} }

// ArrayNode returns an array Node containing the given items.
func ArrayNode(items ...*Node) *Node {
	return &Node{Kind: KindArray, Array: items}
}

// ObjectNode returns an empty object Node.
func ObjectNode() *Node {
	return &Node{Kind: KindObject, fields: map[string]*Node{}}
}

// Set inserts or overwrites key's value on an object Node without changing
// its position if already present. Panics if called on a non-object node,
// which would indicate a bug in this package rather than caller error.
func (n *Node) Set(key string, value *Node) *Node {
	if n.Kind != KindObject {
		panic("serialize: Set called on a non-object node")
	}
	if n.fields == nil {
		n.fields = map[string]*Node{}
	}
	if _, exists := n.fields[key]; !exists {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = value
	return n
}

// Get looks up key's value on an object node.
func (n *Node) Get(key string) (*Node, bool) {
	if n.Kind != KindObject {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Keys returns an object node's keys in insertion order.
func (n *Node) Keys() []string {
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

func stringArray(values []string) *Node {
	items := make([]*Node, len(values))
	for i, v := range values {
		items[i] = StringNode(v)
	}
	return ArrayNode(items...)
}
