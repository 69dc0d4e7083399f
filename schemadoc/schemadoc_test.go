package schemadoc

import (
	"testing"

	"github.com/kaptinlin/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_RequiresNonEmptyProperties(t *testing.T) {
	_, err := NewBuilder("Org::Service::Widget", "A widget.").Build("Org::Service::Widget")
	assert.Error(t, err)
}

func TestBuilder_RequiresDescription(t *testing.T) {
	b := NewBuilder("Org::Service::Widget", "")
	b.AddProperty("Id", &Property{Schema: jsonschema.String()})
	_, err := b.Build("Org::Service::Widget")
	assert.Error(t, err)
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder("Org::Service::Widget", "A widget.")
	b.AddProperty("Id", &Property{Schema: jsonschema.String()})
	b.AddProperty("Name", &Property{Schema: jsonschema.String()})
	b.SetPrimaryIdentifier([]string{"/properties/Id"})

	schema, err := b.Build("Org::Service::Widget")
	require.NoError(t, err)

	assert.Equal(t, []string{"Id", "Name"}, schema.Properties.Keys())
	assert.Equal(t, []string{"/properties/Id"}, schema.PrimaryIdentifier)
}

func TestOrderedMap_PreservesInsertionOrder(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 2)
	m.Set("a", 1)
	m.Set("b", 20)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	require.True(t, ok)
	assert.Equal(t, 20, v)
}
