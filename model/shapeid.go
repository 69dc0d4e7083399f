// Package model defines the read-only query surface the derivation engine
// needs against a loaded service-description model: shapes, traits,
// resources, structures and operations. The model itself (parsing of the
// source description language) is an external collaborator — this package
// only specifies the queries made against one, plus an in-memory
// implementation suitable for tests and for callers who do not already
// have a loader.
package model

import "strings"

// ShapeID is a namespaced shape identifier of the form
// "namespace#name" optionally followed by "$member" when the id refers to
// a member of a structure or union shape. Equality is structural — two
// ShapeID values are equal exactly when their string forms are equal.
type ShapeID string

// NewShapeID builds a ShapeID from a namespace and a name, e.g.
// NewShapeID("example.foo", "FooResource") -> "example.foo#FooResource".
func NewShapeID(namespace, name string) ShapeID {
	return ShapeID(namespace + "#" + name)
}

// Namespace returns the namespace segment of the shape id.
func (id ShapeID) Namespace() string {
	before, _, _ := strings.Cut(string(id), "#")
	return before
}

// Name returns the name segment of the shape id, excluding any member
// suffix.
func (id ShapeID) Name() string {
	_, after, _ := strings.Cut(string(id), "#")
	name, _, _ := strings.Cut(after, "$")
	return name
}

// Member returns the member name and true if the shape id carries a
// "$member" suffix, or ("", false) otherwise.
func (id ShapeID) Member() (string, bool) {
	_, member, found := strings.Cut(string(id), "$")
	return member, found
}

// WithMember returns a new ShapeID that refers to the given member of the
// receiver's structure or union shape, dropping any existing member
// suffix first.
func (id ShapeID) WithMember(memberName string) ShapeID {
	base, _, _ := strings.Cut(string(id), "$")
	return ShapeID(base + "$" + memberName)
}

// ShapeOnly returns the shape id with any member suffix stripped.
func (id ShapeID) ShapeOnly() ShapeID {
	before, _, found := strings.Cut(string(id), "$")
	if found {
		return ShapeID(before)
	}
	return id
}

// String returns the shape id in its canonical namespace#name$member form.
func (id ShapeID) String() string {
	return string(id)
}
