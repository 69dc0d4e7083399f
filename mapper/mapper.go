// Package mapper implements the pipeline that decorates a schema document
// built from a resource's synthetic structure: an ordered sequence of
// mappers with before/after/update-node hooks, plus the assembly function
// that ties the derivation engine, the synthesizer and the shape-to-schema
// converter together into emitted documents (spec.md §4.E).
package mapper

import (
	"sort"
	"strings"

	"github.com/lattice-tools/resourceschema/converter"
	"github.com/lattice-tools/resourceschema/model"
	"github.com/lattice-tools/resourceschema/rsconfig"
	"github.com/lattice-tools/resourceschema/rslog"
	"github.com/lattice-tools/resourceschema/schemadoc"
	"github.com/lattice-tools/resourceschema/serialize"
)

// Mapper is a pipeline stage. Every mapper declares an Order; the three
// hooks below are optional capabilities a mapper may additionally
// implement, checked by type assertion against the base interface rather
// than forcing every mapper to carry empty bodies for hooks it doesn't
// use — the same capability-interface shape as io.ReaderFrom or
// http.Flusher in the standard library.
type Mapper interface {
	Order() int8
}

// BeforeMapper hooks run in ascending Order, after root properties and
// definitions have been collected onto the builder but before build().
type BeforeMapper interface {
	Mapper
	Before(ctx *Context, builder *schemadoc.Builder) error
}

// AfterMapper hooks run in ascending Order once the resource schema has
// been built.
type AfterMapper interface {
	Mapper
	After(ctx *Context, schema *schemadoc.ResourceSchema) (*schemadoc.ResourceSchema, error)
}

// UpdateNodeMapper hooks run in ascending Order on the serialized tree.
type UpdateNodeMapper interface {
	Mapper
	UpdateNode(ctx *Context, schema *schemadoc.ResourceSchema, node *serialize.Node) (*serialize.Node, error)
}

// Context is threaded through every mapper hook for a single resource's
// conversion (spec.md §4.E "Context").
type Context struct {
	Model             model.Model
	Service           *model.Service
	Resource          *model.Resource
	SyntheticStructID model.ShapeID
	Config            *rsconfig.Config
	Converter         converter.ShapeToSchemaConverter
	Logger            rslog.Logger
}

// ResolvedPropertyName returns name capitalized, unless the configuration
// disables capitalization.
func (c *Context) ResolvedPropertyName(name string) string {
	return resolvedPropertyName(c.Config, name)
}

func resolvedPropertyName(config *rsconfig.Config, name string) string {
	if config.DisableCapitalizedProperties {
		return name
	}
	return capitalize(name)
}

// PropertyPointer returns the JSON pointer locating name's published
// property: "/properties/" + ResolvedPropertyName(name).
func (c *Context) PropertyPointer(name string) string {
	return "/properties/" + c.ResolvedPropertyName(name)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sortMappers returns mappers ordered ascending by Order, ties broken by
// original position (spec.md §9: "signed 8-bit integer; ties break by
// insertion order").
func sortMappers(mappers []Mapper) []Mapper {
	sorted := make([]Mapper, len(mappers))
	copy(sorted, mappers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order() < sorted[j].Order()
	})
	return sorted
}
