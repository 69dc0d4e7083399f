package serialize

import (
	"github.com/kaptinlin/jsonschema"

	"github.com/lattice-tools/resourceschema/schemadoc"
)

// Emit converts a built ResourceSchema into its serialized tree form
// (spec.md §4.F). Fields are emitted only when non-default: empty lists and
// maps are omitted, and a Property's insertion_order flag is omitted when
// false. description and type_name are always present.
func Emit(schema *schemadoc.ResourceSchema) (*Node, error) {
	node := ObjectNode()
	node.Set("type_name", StringNode(schema.TypeName))
	node.Set("description", StringNode(schema.Description))

	if schema.SourceURL != "" {
		node.Set("source_url", StringNode(schema.SourceURL))
	}
	if schema.DocumentationURL != "" {
		node.Set("documentation_url", StringNode(schema.DocumentationURL))
	}

	if schema.Definitions.Len() > 0 {
		defs := ObjectNode()
		var firstErr error
		schema.Definitions.Range(func(name string, value *jsonschema.Schema) {
			if firstErr != nil {
				return
			}
			encoded, err := FromJSON(value)
			if err != nil {
				firstErr = err
				return
			}
			defs.Set(name, encoded)
		})
		if firstErr != nil {
			return nil, firstErr
		}
		node.Set("definitions", defs)
	}

	props := ObjectNode()
	var propErr error
	schema.Properties.Range(func(name string, p *schemadoc.Property) {
		if propErr != nil {
			return
		}
		encoded, err := emitProperty(p)
		if err != nil {
			propErr = err
			return
		}
		props.Set(name, encoded)
	})
	if propErr != nil {
		return nil, propErr
	}
	node.Set("properties", props)

	if len(schema.ReadOnlyProperties) > 0 {
		node.Set("read_only_properties", stringArray(schema.ReadOnlyProperties))
	}
	if len(schema.WriteOnlyProperties) > 0 {
		node.Set("write_only_properties", stringArray(schema.WriteOnlyProperties))
	}
	if len(schema.CreateOnlyProperties) > 0 {
		node.Set("create_only_properties", stringArray(schema.CreateOnlyProperties))
	}
	if len(schema.DeprecatedProperties) > 0 {
		node.Set("deprecated_properties", stringArray(schema.DeprecatedProperties))
	}
	if len(schema.PrimaryIdentifier) > 0 {
		node.Set("primary_identifier", stringArray(schema.PrimaryIdentifier))
	}
	if len(schema.AdditionalIdentifiers) > 0 {
		groups := make([]*Node, len(schema.AdditionalIdentifiers))
		for i, group := range schema.AdditionalIdentifiers {
			groups[i] = stringArray(group)
		}
		node.Set("additional_identifiers", ArrayNode(groups...))
	}

	if schema.Handlers.Len() > 0 {
		handlers := ObjectNode()
		schema.Handlers.Range(func(name string, h *schemadoc.Handler) {
			handlers.Set(name, emitHandler(h))
		})
		node.Set("handlers", handlers)
	}

	return node, nil
}

func emitProperty(p *schemadoc.Property) (*Node, error) {
	schemaNode, err := FromJSON(p.Schema)
	if err != nil {
		return nil, err
	}
	obj := ObjectNode()
	obj.Set("schema", schemaNode)
	if p.InsertionOrder {
		obj.Set("insertion_order", BoolNode(true))
	}
	return obj, nil
}

func emitHandler(h *schemadoc.Handler) *Node {
	obj := ObjectNode()
	if len(h.Permissions) > 0 {
		obj.Set("permissions", stringArray(h.Permissions))
	}
	return obj
}
