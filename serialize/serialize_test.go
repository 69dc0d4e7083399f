package serialize

import (
	"testing"

	"github.com/kaptinlin/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-tools/resourceschema/schemadoc"
)

func TestEmit_OmitsEmptyOptionalFields(t *testing.T) {
	b := schemadoc.NewBuilder("Org::Service::Widget", "A widget.")
	b.AddProperty("Id", &schemadoc.Property{Schema: jsonschema.String()})
	schema, err := b.Build("Org::Service::Widget")
	require.NoError(t, err)

	node, err := Emit(schema)
	require.NoError(t, err)

	_, hasSourceURL := node.Get("source_url")
	assert.False(t, hasSourceURL)
	_, hasReadOnly := node.Get("read_only_properties")
	assert.False(t, hasReadOnly)

	typeName, ok := node.Get("type_name")
	require.True(t, ok)
	assert.Equal(t, "Org::Service::Widget", typeName.String)
}

func TestEmit_PropertyInsertionOrderFlag(t *testing.T) {
	b := schemadoc.NewBuilder("Org::Service::Widget", "A widget.")
	b.AddProperty("Tags", &schemadoc.Property{Schema: jsonschema.Array(), InsertionOrder: true})
	schema, err := b.Build("Org::Service::Widget")
	require.NoError(t, err)

	node, err := Emit(schema)
	require.NoError(t, err)

	props, ok := node.Get("properties")
	require.True(t, ok)
	tags, ok := props.Get("Tags")
	require.True(t, ok)
	orderFlag, ok := tags.Get("insertion_order")
	require.True(t, ok)
	assert.True(t, orderFlag.Bool)
}

func TestPointer_AddCreatesIntermediateObjects(t *testing.T) {
	root := ObjectNode()
	err := Add(root, "/handlers/create/timeoutInMinutes", NumberNode(30))
	require.NoError(t, err)

	handlers, ok := root.Get("handlers")
	require.True(t, ok)
	create, ok := handlers.Get("create")
	require.True(t, ok)
	timeout, ok := create.Get("timeoutInMinutes")
	require.True(t, ok)
	assert.Equal(t, float64(30), timeout.Number)
}

func TestPointer_AddOverwritesExistingLeaf(t *testing.T) {
	root := ObjectNode()
	root.Set("properties", ObjectNode().Set("FooId", StringNode("old")))

	err := Add(root, "/properties/FooId", StringNode("new"))
	require.NoError(t, err)

	props, _ := root.Get("properties")
	value, _ := props.Get("FooId")
	assert.Equal(t, "new", value.String)
}

func TestPointer_RejectsMalformedPointer(t *testing.T) {
	_, err := ParsePointer("properties/FooId")
	assert.Error(t, err)
}

func TestPointer_EscapeSequences(t *testing.T) {
	segments, err := ParsePointer("/a~1b/c~0d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b", "c~d"}, segments)
}

func TestFromJSON_PreservesStructFieldOrder(t *testing.T) {
	schema := jsonschema.String(jsonschema.Description("an id"), jsonschema.Format("uuid"))
	node, err := FromJSON(schema)
	require.NoError(t, err)
	assert.Equal(t, KindObject, node.Kind)

	typ, ok := node.Get("type")
	require.True(t, ok)
	assert.Equal(t, KindString, typ.Kind)

	ordered, err := FromJSON(struct {
		B int `json:"b"`
		A int `json:"a"`
	}{B: 1, A: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ordered.Keys())
}
