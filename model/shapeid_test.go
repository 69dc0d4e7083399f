package model

import "testing"

func TestShapeID_NamespaceNameMember(t *testing.T) {
	id := NewShapeID("example.foo", "FooResource")
	if id.Namespace() != "example.foo" {
		t.Fatalf("expected namespace example.foo, got %s", id.Namespace())
	}
	if id.Name() != "FooResource" {
		t.Fatalf("expected name FooResource, got %s", id.Name())
	}
	if _, ok := id.Member(); ok {
		t.Fatalf("expected no member suffix")
	}

	withMember := id.WithMember("fooId")
	member, ok := withMember.Member()
	if !ok || member != "fooId" {
		t.Fatalf("expected member fooId, got %q ok=%v", member, ok)
	}
	if withMember.Name() != "FooResource" {
		t.Fatalf("expected name to ignore member suffix, got %s", withMember.Name())
	}
	if withMember.ShapeOnly() != id {
		t.Fatalf("expected ShapeOnly to strip member suffix back to %s, got %s", id, withMember.ShapeOnly())
	}
}

func TestShapeID_Equality(t *testing.T) {
	a := NewShapeID("example.foo", "FooResource")
	b := ShapeID("example.foo#FooResource")
	if a != b {
		t.Fatalf("expected structural equality between %s and %s", a, b)
	}
}
