// Package converter defines the shape-to-schema converter interface the
// mapper pipeline consumes, plus a concrete default implementation built on
// github.com/kaptinlin/jsonschema.
package converter

import (
	"github.com/kaptinlin/jsonschema"

	"github.com/lattice-tools/resourceschema/model"
	"github.com/lattice-tools/resourceschema/schemaerrors"
)

// DefinitionEntry is one (pointer, schema) pair of a converted document's
// definitions. Entries are appended when a shape's conversion finishes, so
// the definitions of a shape's nested structures and unions precede it.
type DefinitionEntry struct {
	Pointer string
	Schema  *jsonschema.Schema
}

// SchemaDocument is the result of converting a root shape (spec.md §6
// "Shape-to-schema converter interface").
type SchemaDocument struct {
	RootSchema  *jsonschema.Schema
	Definitions []DefinitionEntry
}

// ShapeToSchemaConverter turns a model shape into a JSON Schema document.
// This is a consumed interface: the engine drives a converter but does not
// mandate this package's implementation.
type ShapeToSchemaConverter interface {
	Convert(m model.Model, rootShapeID model.ShapeID) (*SchemaDocument, error)
}

// Default is a concrete, non-mandatory ShapeToSchemaConverter. Nested
// structures and unions are registered once as a definition and referenced
// thereafter by $ref, so recursive shapes terminate.
type Default struct {
	// BlobFormat is the format string applied to blob schemas; falls back
	// to "byte" when empty.
	BlobFormat string
	// DefinitionPrefix is prepended to every definition pointer, e.g.
	// "#/definitions/".
	DefinitionPrefix string

	seen        map[model.ShapeID]string
	definitions []DefinitionEntry
}

// NewDefault builds a Default converter.
func NewDefault(blobFormat, definitionPrefix string) *Default {
	return &Default{BlobFormat: blobFormat, DefinitionPrefix: definitionPrefix}
}

func (d *Default) Convert(m model.Model, rootShapeID model.ShapeID) (*SchemaDocument, error) {
	d.seen = map[model.ShapeID]string{}
	d.definitions = nil

	rootStructure, ok := m.Structure(rootShapeID)
	if !ok {
		return nil, schemaerrors.ShapeTypeMismatch(string(rootShapeID), "structure")
	}

	root, err := d.buildStructureSchema(m, rootStructure)
	if err != nil {
		return nil, err
	}
	return &SchemaDocument{RootSchema: root, Definitions: d.definitions}, nil
}

func (d *Default) convertShape(m model.Model, shapeID model.ShapeID) (*jsonschema.Schema, error) {
	if structure, ok := m.Structure(shapeID); ok {
		return d.convertNestedStructure(m, shapeID, structure)
	}
	if union, ok := m.Union(shapeID); ok {
		return d.convertNestedUnion(m, shapeID, union)
	}
	if list, ok := m.List(shapeID); ok {
		item, err := d.convertShape(m, list.Member)
		if err != nil {
			return nil, err
		}
		return jsonschema.Array(jsonschema.Items(item)), nil
	}
	if mp, ok := m.Map(shapeID); ok {
		value, err := d.convertShape(m, mp.Value)
		if err != nil {
			return nil, err
		}
		return jsonschema.Object(jsonschema.AdditionalPropsSchema(value)), nil
	}
	if simple, ok := m.Simple(shapeID); ok {
		return d.convertSimple(simple), nil
	}
	return nil, schemaerrors.ShapeNotFound(string(shapeID))
}

func (d *Default) convertSimple(s *model.Simple) *jsonschema.Schema {
	switch s.Kind {
	case model.KindString:
		return jsonschema.String()
	case model.KindInteger:
		return jsonschema.Integer()
	case model.KindFloat:
		return jsonschema.Number()
	case model.KindBoolean:
		return jsonschema.Boolean()
	case model.KindBlob:
		return jsonschema.String(jsonschema.Format(d.blobFormat()))
	case model.KindTimestamp:
		return jsonschema.String(jsonschema.Format("date-time"))
	default:
		return jsonschema.Any()
	}
}

func (d *Default) blobFormat() string {
	if d.BlobFormat == "" {
		return "byte"
	}
	return d.BlobFormat
}

func (d *Default) buildStructureSchema(m model.Model, structure *model.Structure) (*jsonschema.Schema, error) {
	items := make([]interface{}, 0, len(structure.Members))
	for _, member := range structure.Members {
		memberSchema, err := d.convertShape(m, member.Target)
		if err != nil {
			return nil, err
		}
		items = append(items, jsonschema.Prop(member.Name, memberSchema))
	}
	return jsonschema.Object(items...), nil
}

func (d *Default) convertNestedStructure(m model.Model, shapeID model.ShapeID, structure *model.Structure) (*jsonschema.Schema, error) {
	if pointer, ok := d.seen[shapeID]; ok {
		return jsonschema.Ref(pointer), nil
	}
	pointer := d.DefinitionPrefix + shapeID.Name()
	d.seen[shapeID] = pointer

	schema, err := d.buildStructureSchema(m, structure)
	if err != nil {
		return nil, err
	}
	d.definitions = append(d.definitions, DefinitionEntry{Pointer: pointer, Schema: schema})
	return jsonschema.Ref(pointer), nil
}

func (d *Default) convertNestedUnion(m model.Model, shapeID model.ShapeID, union *model.Union) (*jsonschema.Schema, error) {
	if pointer, ok := d.seen[shapeID]; ok {
		return jsonschema.Ref(pointer), nil
	}
	pointer := d.DefinitionPrefix + shapeID.Name()
	d.seen[shapeID] = pointer

	alternatives := make([]*jsonschema.Schema, 0, len(union.Members))
	for _, member := range union.Members {
		memberSchema, err := d.convertShape(m, member.Target)
		if err != nil {
			return nil, err
		}
		alternatives = append(alternatives, memberSchema)
	}
	schema := jsonschema.OneOf(alternatives...)
	d.definitions = append(d.definitions, DefinitionEntry{Pointer: pointer, Schema: schema})
	return jsonschema.Ref(pointer), nil
}

var _ ShapeToSchemaConverter = (*Default)(nil)
