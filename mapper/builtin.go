package mapper

import (
	"github.com/lattice-tools/resourceschema/derive"
	"github.com/lattice-tools/resourceschema/model"
	"github.com/lattice-tools/resourceschema/rsconfig"
	"github.com/lattice-tools/resourceschema/rslog"
	"github.com/lattice-tools/resourceschema/schemadoc"
	"github.com/lattice-tools/resourceschema/serialize"
)

// Order values for the built-in mappers. The JSON-add mapper is
// intentionally late (spec.md §9) so its patches see a stabilized
// document; the rest run early and in the order they're listed in
// spec.md §4.E, though nothing depends on their relative order since each
// writes a disjoint set of builder fields.
const (
	OrderIdentifier    int8 = -40
	OrderMutability    int8 = -30
	OrderDocumentation int8 = -20
	OrderDeprecated    int8 = -10
	OrderJSONAdd       int8 = 96
)

// identifierMapper writes primary_identifier and additional_identifiers as
// JSON pointers, from the derivation engine's identifier queries.
type identifierMapper struct {
	engine *derive.Engine
}

// NewIdentifierMapper builds the built-in identifier mapper.
func NewIdentifierMapper(engine *derive.Engine) Mapper {
	return &identifierMapper{engine: engine}
}

func (m *identifierMapper) Order() int8 { return OrderIdentifier }

func (m *identifierMapper) Before(ctx *Context, builder *schemadoc.Builder) error {
	primary, err := m.engine.GetPrimaryIdentifiers(ctx.Resource.ID)
	if err != nil {
		return err
	}
	builder.SetPrimaryIdentifier(pointersFor(ctx, primary))

	groups, err := m.engine.GetAdditionalIdentifiers(ctx.Resource.ID)
	if err != nil {
		return err
	}
	pointerGroups := make([][]string, len(groups))
	for i, group := range groups {
		pointerGroups[i] = pointersFor(ctx, group)
	}
	builder.SetAdditionalIdentifiers(pointerGroups)
	return nil
}

// mutabilityMapper writes create_only_properties, read_only_properties and
// write_only_properties as JSON pointers, from the derivation engine's
// mutability queries.
type mutabilityMapper struct {
	engine *derive.Engine
}

// NewMutabilityMapper builds the built-in mutability mapper.
func NewMutabilityMapper(engine *derive.Engine) Mapper {
	return &mutabilityMapper{engine: engine}
}

func (m *mutabilityMapper) Order() int8 { return OrderMutability }

func (m *mutabilityMapper) Before(ctx *Context, builder *schemadoc.Builder) error {
	readOnly, err := m.engine.GetReadOnlyProperties(ctx.Resource.ID)
	if err != nil {
		return err
	}
	builder.SetReadOnlyProperties(pointersFor(ctx, readOnly))

	createOnly, err := m.engine.GetCreateOnlyProperties(ctx.Resource.ID)
	if err != nil {
		return err
	}
	builder.SetCreateOnlyProperties(pointersFor(ctx, createOnly))

	writeOnly, err := m.engine.GetWriteOnlyProperties(ctx.Resource.ID)
	if err != nil {
		return err
	}
	builder.SetWriteOnlyProperties(pointersFor(ctx, writeOnly))
	return nil
}

// documentationMapper picks source_url and documentation_url from the
// resource's externalDocumentation trait, per the configured candidate
// keys.
type documentationMapper struct{}

// NewDocumentationMapper builds the built-in documentation mapper.
func NewDocumentationMapper() Mapper {
	return &documentationMapper{}
}

func (m *documentationMapper) Order() int8 { return OrderDocumentation }

func (m *documentationMapper) Before(ctx *Context, builder *schemadoc.Builder) error {
	trait, ok := ctx.Model.GetTrait(ctx.Resource.ID, model.TraitExternalDocumentation)
	if !ok {
		return nil
	}
	docs, ok := trait.(model.ExternalDocumentationTrait)
	if !ok {
		return nil
	}
	if url, ok := docs.Lookup(ctx.Config.SourceDocKeys); ok {
		builder.SetSourceURL(url)
	} else {
		ctx.Logger.Debug("no source_url candidate matched",
			rslog.StringLogField("resource_id", string(ctx.Resource.ID)),
			rslog.StringsLogField("candidates", ctx.Config.SourceDocKeys))
	}
	if url, ok := docs.Lookup(ctx.Config.ExternalDocKeys); ok {
		builder.SetDocumentationURL(url)
	} else {
		ctx.Logger.Debug("no documentation_url candidate matched",
			rslog.StringLogField("resource_id", string(ctx.Resource.ID)),
			rslog.StringsLogField("candidates", ctx.Config.ExternalDocKeys))
	}
	return nil
}

// deprecatedMapper adds every deprecated property's resolved name to
// deprecated_properties, unless configuration suppresses it.
type deprecatedMapper struct {
	engine *derive.Engine
}

// NewDeprecatedMapper builds the built-in deprecated-property mapper.
func NewDeprecatedMapper(engine *derive.Engine) Mapper {
	return &deprecatedMapper{engine: engine}
}

func (m *deprecatedMapper) Order() int8 { return OrderDeprecated }

func (m *deprecatedMapper) Before(ctx *Context, builder *schemadoc.Builder) error {
	if ctx.Config.DisableDeprecatedPropertyGeneration {
		return nil
	}
	entries, err := m.engine.GetProperties(ctx.Resource.ID)
	if err != nil {
		return err
	}
	var deprecated []string
	for _, entry := range entries {
		if _, ok := ctx.Model.GetTrait(entry.Definition.ShapeID, model.TraitDeprecated); ok {
			resolvedName := ctx.ResolvedPropertyName(entry.Name)
			ctx.Logger.Debug("deprecated property found",
				rslog.StringLogField("resource_id", string(ctx.Resource.ID)),
				rslog.StringLogField("property", resolvedName))
			deprecated = append(deprecated, resolvedName)
		}
	}
	if len(deprecated) > 0 {
		builder.SetDeprecatedProperties(deprecated)
	}
	return nil
}

// jsonAddMapper applies configured (pointer, value) patches to the
// serialized document, late enough to see every other mapper's output.
type jsonAddMapper struct {
	entries []rsconfig.JSONAddEntry
}

// NewJSONAddMapper builds the built-in JSON-add post-processing mapper.
func NewJSONAddMapper(entries []rsconfig.JSONAddEntry) Mapper {
	return &jsonAddMapper{entries: entries}
}

func (m *jsonAddMapper) Order() int8 { return OrderJSONAdd }

func (m *jsonAddMapper) UpdateNode(ctx *Context, schema *schemadoc.ResourceSchema, node *serialize.Node) (*serialize.Node, error) {
	for _, entry := range m.entries {
		value, err := serialize.FromJSON(entry.Value)
		if err != nil {
			return nil, err
		}
		if err := serialize.Add(node, entry.Pointer, value); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// BuiltIns returns the five built-in mappers (spec.md §4.E), wired against
// engine and config.
func BuiltIns(engine *derive.Engine, config *rsconfig.Config) []Mapper {
	return []Mapper{
		NewIdentifierMapper(engine),
		NewMutabilityMapper(engine),
		NewDocumentationMapper(),
		NewDeprecatedMapper(engine),
		NewJSONAddMapper(config.JSONAdd),
	}
}

func pointersFor(ctx *Context, names []string) []string {
	pointers := make([]string, len(names))
	for i, name := range names {
		pointers[i] = ctx.PropertyPointer(name)
	}
	return pointers
}

var (
	_ BeforeMapper     = (*identifierMapper)(nil)
	_ BeforeMapper     = (*mutabilityMapper)(nil)
	_ BeforeMapper     = (*documentationMapper)(nil)
	_ BeforeMapper     = (*deprecatedMapper)(nil)
	_ UpdateNodeMapper = (*jsonAddMapper)(nil)
)
