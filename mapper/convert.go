package mapper

import (
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonschema"

	"github.com/lattice-tools/resourceschema/converter"
	"github.com/lattice-tools/resourceschema/derive"
	"github.com/lattice-tools/resourceschema/model"
	"github.com/lattice-tools/resourceschema/rsconfig"
	"github.com/lattice-tools/resourceschema/rslog"
	"github.com/lattice-tools/resourceschema/schemadoc"
	"github.com/lattice-tools/resourceschema/schemaerrors"
	"github.com/lattice-tools/resourceschema/serialize"
	"github.com/lattice-tools/resourceschema/synth"
)

const definitionPrefix = "#/definitions/"

// Option configures a Convert call. Mirrors derive.Option's shape.
type Option func(*convertOptions)

type convertOptions struct {
	logger rslog.Logger
}

// WithLogger attaches a logger used for mapper pipeline diagnostics, e.g. a
// deprecated property found or a documentation link candidate that didn't
// match. Defaults to a no-op logger.
func WithLogger(logger rslog.Logger) Option {
	return func(o *convertOptions) {
		o.logger = logger
	}
}

// Convert runs the full assembly (spec.md §4.E.1) over every resource
// transitively reachable from config.Service, returning the keyed map
// type_name → serialized document. A resource whose conversion fails is
// recorded as a child error and skipped; Convert returns both the
// documents that did convert and a joined error describing the rest, so a
// caller can decide whether a partial batch is usable.
func Convert(m model.Model, config *rsconfig.Config, mappers []Mapper, opts ...Option) (map[string]*serialize.Node, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := &convertOptions{logger: rslog.NewNopLogger()}
	for _, opt := range opts {
		opt(options)
	}

	service, ok := m.Service(config.Service)
	if !ok {
		_, isStructure := m.Structure(config.Service)
		_, isResource := m.Resource(config.Service)
		_, isOperation := m.Operation(config.Service)
		_, isUnion := m.Union(config.Service)
		_, isSimple := m.Simple(config.Service)
		if isStructure || isResource || isOperation || isUnion || isSimple {
			return nil, schemaerrors.ShapeTypeMismatch(string(config.Service), "service")
		}
		return nil, schemaerrors.ShapeNotFound(string(config.Service))
	}

	engine := derive.NewEngine(m)
	sorted := sortMappers(mappers)

	resources := m.GetTransitiveResources(config.Service)
	warnUnreachableResources(m, resources, options.logger)

	out := make(map[string]*serialize.Node, len(resources))
	var children []error
	for _, resource := range resources {
		typeName, node, err := convertResource(m, service, resource, config, sorted, engine, options.logger)
		if err != nil {
			children = append(children, fmt.Errorf("%s: %w", resource.ID, err))
			continue
		}
		out[typeName] = node
	}

	if len(children) > 0 {
		return out, schemaerrors.Join(schemaerrors.ReasonCodeBatchConversionFailed, fmt.Errorf("%d of %d resources failed conversion", len(children), len(resources)), children)
	}
	return out, nil
}

// convertResource implements §4.E.1's single-resource assembly: derive,
// synthesize, convert, populate the builder, run the before/build/after
// sequence, serialize, then run update_node.
func convertResource(
	m model.Model,
	service *model.Service,
	resource *model.Resource,
	config *rsconfig.Config,
	mappers []Mapper,
	engine *derive.Engine,
	logger rslog.Logger,
) (string, *serialize.Node, error) {
	table, err := engine.Derive(resource.ID)
	if err != nil {
		return "", nil, err
	}

	synthModel, structID := synth.Synthesize(m, resource, table)

	conv := converter.NewDefault(config.ResolveBlobFormat(), definitionPrefix)
	doc, err := conv.Convert(synthModel, structID)
	if err != nil {
		return "", nil, err
	}

	typeName := resolveTypeName(m, config, service, resource)
	description := resourceDescription(m, resource)
	builder := schemadoc.NewBuilder(typeName, description)

	for _, entry := range table.GetProperties() {
		propertySchema, ok := lookupPropertySchema(doc.RootSchema, entry.Name)
		if !ok {
			continue
		}
		resolvedName := resolvedPropertyName(config, entry.Name)
		builder.AddProperty(resolvedName, &schemadoc.Property{Schema: propertySchema})
	}

	for _, def := range doc.Definitions {
		builder.AddDefinition(strings.TrimPrefix(def.Pointer, definitionPrefix), def.Schema)
	}

	ctx := &Context{
		Model:             m,
		Service:           service,
		Resource:          resource,
		SyntheticStructID: structID,
		Config:            config,
		Converter:         conv,
		Logger:            logger,
	}

	for _, mp := range mappers {
		if before, ok := mp.(BeforeMapper); ok {
			if err := before.Before(ctx, builder); err != nil {
				return "", nil, err
			}
		}
	}

	schema, err := builder.Build(string(resource.ID))
	if err != nil {
		return "", nil, err
	}

	for _, mp := range mappers {
		if after, ok := mp.(AfterMapper); ok {
			schema, err = after.After(ctx, schema)
			if err != nil {
				return "", nil, err
			}
		}
	}

	node, err := serialize.Emit(schema)
	if err != nil {
		return "", nil, err
	}

	for _, mp := range mappers {
		if updater, ok := mp.(UpdateNodeMapper); ok {
			node, err = updater.UpdateNode(ctx, schema, node)
			if err != nil {
				return "", nil, err
			}
		}
	}

	return typeName, node, nil
}

// resolveTypeName implements §4.E.2: organization::service::resource,
// where service defaults to the service shape's name and resource
// defaults to the resource shape's name, both overridable.
func resolveTypeName(m model.Model, config *rsconfig.Config, service *model.Service, resource *model.Resource) string {
	serviceName := config.ResolveServiceName(service)
	resourceName := resource.ID.Name()
	if trait, ok := m.GetTrait(resource.ID, model.TraitResource); ok {
		if resourceTrait, ok := trait.(model.ResourceTrait); ok && resourceTrait.Name != "" {
			resourceName = resourceTrait.Name
		}
	}
	return config.OrganizationName + "::" + serviceName + "::" + resourceName
}

// resourceDescription reads the resource's documentation trait. An empty
// result surfaces as schemaerrors.MissingDescription when the builder
// validates it.
func resourceDescription(m model.Model, resource *model.Resource) string {
	trait, ok := m.GetTrait(resource.ID, model.TraitDocumentation)
	if !ok {
		return ""
	}
	doc, ok := trait.(model.DocumentationTrait)
	if !ok {
		return ""
	}
	return string(doc)
}

// warnUnreachableResources compares the model's full resource listing
// against the set reachable from the configured service and logs a Warn
// for each resource the model declares that the configured service never
// reaches, since such a resource is silently skipped by Convert and that
// is usually a wiring mistake in the service's resource list rather than
// intentional.
func warnUnreachableResources(m model.Model, reachable []*model.Resource, logger rslog.Logger) {
	reachableIDs := make(map[model.ShapeID]struct{}, len(reachable))
	for _, resource := range reachable {
		reachableIDs[resource.ID] = struct{}{}
	}
	for _, resource := range m.EnumerateResources() {
		if _, ok := reachableIDs[resource.ID]; ok {
			continue
		}
		logger.Warn("resource defined in model but not reachable from configured service", rslog.StringLogField("resource_id", string(resource.ID)))
	}
}

func lookupPropertySchema(root *jsonschema.Schema, name string) (*jsonschema.Schema, bool) {
	if root.Properties == nil {
		return nil, false
	}
	schema, ok := (*root.Properties)[name]
	return schema, ok
}
