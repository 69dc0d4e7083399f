// Package schemadoc defines the immutable-once-built resource schema
// document and its builder.
package schemadoc

import (
	"github.com/kaptinlin/jsonschema"

	"github.com/lattice-tools/resourceschema/schemaerrors"
)

// Property is a single resource property's published schema. InsertionOrder
// marks that the property's array values must preserve insertion order; it
// is serialized only when true (spec.md §4.F).
type Property struct {
	Schema         *jsonschema.Schema
	InsertionOrder bool
}

// Handler describes a lifecycle operation's execution requirements,
// following the permission-list convention used by CloudFormation resource
// schemas for their handlers section.
type Handler struct {
	Permissions []string
}

// ResourceSchema is the output document (spec.md §3 "ResourceSchema").
// Built only through Builder.Build, and immutable afterward.
type ResourceSchema struct {
	TypeName              string
	Description           string
	SourceURL             string
	DocumentationURL      string
	Definitions           *OrderedMap[*jsonschema.Schema]
	Properties            *OrderedMap[*Property]
	ReadOnlyProperties    []string
	WriteOnlyProperties   []string
	CreateOnlyProperties  []string
	DeprecatedProperties  []string
	PrimaryIdentifier     []string
	AdditionalIdentifiers [][]string
	Handlers              *OrderedMap[*Handler]
}

// Builder assembles a ResourceSchema. Required fields are type_name,
// description and a non-empty properties set; Build fails otherwise
// (spec.md §4.D, §7).
type Builder struct {
	schema *ResourceSchema
}

// NewBuilder starts a builder with the two fields that must be set before
// construction: type_name and description.
func NewBuilder(typeName, description string) *Builder {
	return &Builder{
		schema: &ResourceSchema{
			TypeName:    typeName,
			Description: description,
			Definitions: NewOrderedMap[*jsonschema.Schema](),
			Properties:  NewOrderedMap[*Property](),
			Handlers:    NewOrderedMap[*Handler](),
		},
	}
}

// SetSourceURL sets the optional source_url field.
func (b *Builder) SetSourceURL(url string) *Builder {
	b.schema.SourceURL = url
	return b
}

// SetDocumentationURL sets the optional documentation_url field.
func (b *Builder) SetDocumentationURL(url string) *Builder {
	b.schema.DocumentationURL = url
	return b
}

// AddDefinition registers a named schema definition, preserving insertion
// order.
func (b *Builder) AddDefinition(name string, schema *jsonschema.Schema) *Builder {
	b.schema.Definitions.Set(name, schema)
	return b
}

// AddProperty registers a named property, preserving insertion order.
func (b *Builder) AddProperty(name string, property *Property) *Builder {
	b.schema.Properties.Set(name, property)
	return b
}

// SetReadOnlyProperties sets the resource's read-only property name list.
func (b *Builder) SetReadOnlyProperties(names []string) *Builder {
	b.schema.ReadOnlyProperties = names
	return b
}

// SetWriteOnlyProperties sets the resource's write-only property name list.
func (b *Builder) SetWriteOnlyProperties(names []string) *Builder {
	b.schema.WriteOnlyProperties = names
	return b
}

// SetCreateOnlyProperties sets the resource's create-only property name
// list.
func (b *Builder) SetCreateOnlyProperties(names []string) *Builder {
	b.schema.CreateOnlyProperties = names
	return b
}

// SetDeprecatedProperties sets the resource's deprecated property name list.
func (b *Builder) SetDeprecatedProperties(names []string) *Builder {
	b.schema.DeprecatedProperties = names
	return b
}

// SetPrimaryIdentifier sets the resource's primary identifier pointer list.
func (b *Builder) SetPrimaryIdentifier(pointers []string) *Builder {
	b.schema.PrimaryIdentifier = pointers
	return b
}

// SetAdditionalIdentifiers sets the resource's additional identifier
// pointer groups.
func (b *Builder) SetAdditionalIdentifiers(pointers [][]string) *Builder {
	b.schema.AdditionalIdentifiers = pointers
	return b
}

// AddHandler registers a named lifecycle handler, preserving insertion
// order.
func (b *Builder) AddHandler(name string, handler *Handler) *Builder {
	b.schema.Handlers.Set(name, handler)
	return b
}

// Build validates the required fields and returns the finished document.
// resourceID identifies the resource in any error raised, per spec.md §7.
func (b *Builder) Build(resourceID string) (*ResourceSchema, error) {
	if b.schema.Properties.Len() == 0 {
		return nil, schemaerrors.EmptyProperties(resourceID)
	}
	if b.schema.Description == "" {
		return nil, schemaerrors.MissingDescription(resourceID)
	}
	return b.schema, nil
}
