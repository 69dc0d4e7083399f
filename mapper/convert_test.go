package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-tools/resourceschema/derive"
	"github.com/lattice-tools/resourceschema/model"
	"github.com/lattice-tools/resourceschema/rsconfig"
	"github.com/lattice-tools/resourceschema/rslog"
	"github.com/lattice-tools/resourceschema/serialize"
)

// spyLogger records Warn calls so tests can assert on diagnostics emitted
// during Convert without depending on zap's output format.
type spyLogger struct {
	rslog.Logger
	warnings []string
}

func newSpyLogger() *spyLogger {
	return &spyLogger{Logger: rslog.NewNopLogger()}
}

func (l *spyLogger) Warn(msg string, fields ...rslog.LogField) {
	l.warnings = append(l.warnings, msg)
}

func (l *spyLogger) WithFields(fields ...rslog.LogField) rslog.Logger { return l }

func (l *spyLogger) Named(name string) rslog.Logger { return l }

const widgetNS = "smithy.example"

// buildWidgetModel constructs a minimal single-resource model: one
// identifier, a create-only property and a read-output property (which
// derives read-only, since no update operation lists it), wired under a
// service so GetTransitiveResources finds it.
func buildWidgetModel(t *testing.T, resourceTrait *model.ResourceTrait, externalDocs model.ExternalDocumentationTrait) (model.Model, model.ShapeID) {
	t.Helper()

	stringShape := model.NewShapeID(widgetNS, "String")

	createInput := model.NewShapeID(widgetNS, "WidgetCreateInput")
	readOutput := model.NewShapeID(widgetNS, "WidgetReadOutput")

	createOp := model.NewShapeID(widgetNS, "WidgetCreate")
	readOp := model.NewShapeID(widgetNS, "WidgetRead")

	resourceID := model.NewShapeID(widgetNS, "Widget")
	serviceID := model.NewShapeID(widgetNS, "TestService")

	b := model.NewBuilder()
	b.AddSimple(&model.Simple{ID: stringShape, Kind: model.KindString})

	b.AddStructure(&model.Structure{
		ID: createInput,
		Members: []*model.Member{
			model.NewMember(createInput.WithMember("widgetValidCreateProperty"), "widgetValidCreateProperty", stringShape,
				model.WithPresenceTrait(model.TraitCreateOnlyProperty)),
		},
	})
	b.AddStructure(&model.Structure{
		ID: readOutput,
		Members: []*model.Member{
			model.NewMember(readOutput.WithMember("widgetId"), "widgetId", stringShape),
			model.NewMember(readOutput.WithMember("widgetValidFullyMutableProperty"), "widgetValidFullyMutableProperty", stringShape),
		},
	})

	b.AddOperation(&model.Operation{ID: createOp, Input: &createInput})
	b.AddOperation(&model.Operation{ID: readOp, Output: &readOutput})

	traits := map[model.TraitID]model.Trait{
		model.TraitDocumentation: model.DocumentationTrait("A widget."),
	}
	if resourceTrait != nil {
		traits[model.TraitResource] = *resourceTrait
	}
	if externalDocs != nil {
		traits[model.TraitExternalDocumentation] = externalDocs
	}

	b.AddResource(&model.Resource{
		ID:          resourceID,
		Identifiers: []model.Identifier{{Name: "widgetId", Target: stringShape}},
		Create:      &createOp,
		Read:        &readOp,
		Traits:      traits,
	})
	b.BindIdentifier(resourceID, readOp, "widgetId", "widgetId")

	b.AddService(&model.Service{
		ID:        serviceID,
		Name:      "TestService",
		Resources: []model.ShapeID{resourceID},
	})

	return b.Build(), serviceID
}

func newTestConfig(serviceID model.ShapeID) *rsconfig.Config {
	return rsconfig.New("Smithy", serviceID)
}

func stringArrayValues(t *testing.T, node *serialize.Node) []string {
	t.Helper()
	values := make([]string, len(node.Array))
	for i, item := range node.Array {
		values[i] = item.String
	}
	return values
}

func docKeys(docs map[string]*serialize.Node) []string {
	keys := make([]string, 0, len(docs))
	for k := range docs {
		keys = append(keys, k)
	}
	return keys
}

// TestConvert_EndToEnd exercises the full assembly: derive → synthesize →
// convert → mappers → serialize, and checks scenario 5's type_name
// resolution together with scenario 6's default capitalized output.
func TestConvert_EndToEnd(t *testing.T) {
	trait := model.ResourceTrait{Name: "Basil"}
	m, serviceID := buildWidgetModel(t, &trait, model.ExternalDocumentationTrait{
		{Name: "Documentation", URL: "https://example.com/docs"},
		{Name: "Source", URL: "https://example.com/src"},
	})

	cfg := newTestConfig(serviceID)
	engine := derive.NewEngine(m)
	mappers := BuiltIns(engine, cfg)

	docs, err := Convert(m, cfg, mappers)
	require.NoError(t, err)

	node, ok := docs["Smithy::TestService::Basil"]
	require.True(t, ok, "expected type_name Smithy::TestService::Basil, got keys %v", docKeys(docs))

	typeName, ok := node.Get("type_name")
	require.True(t, ok)
	assert.Equal(t, "Smithy::TestService::Basil", typeName.String)

	docURL, ok := node.Get("documentation_url")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs", docURL.String)

	sourceURL, ok := node.Get("source_url")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/src", sourceURL.String)

	props, ok := node.Get("properties")
	require.True(t, ok)
	_, hasWidgetID := props.Get("WidgetId")
	assert.True(t, hasWidgetID, "expected capitalized property key WidgetId")

	primary, ok := node.Get("primary_identifier")
	require.True(t, ok)
	assert.Equal(t, []string{"/properties/WidgetId"}, stringArrayValues(t, primary))

	createOnly, ok := node.Get("create_only_properties")
	require.True(t, ok)
	assert.Equal(t, []string{"/properties/WidgetValidCreateProperty"}, stringArrayValues(t, createOnly))
}

// TestConvert_ServiceNameOverride implements the second half of scenario 5.
func TestConvert_ServiceNameOverride(t *testing.T) {
	trait := model.ResourceTrait{Name: "Basil"}
	m, serviceID := buildWidgetModel(t, &trait, nil)

	cfg := newTestConfig(serviceID)
	cfg.ServiceName = "ExampleService"
	engine := derive.NewEngine(m)

	docs, err := Convert(m, cfg, BuiltIns(engine, cfg))
	require.NoError(t, err)

	_, ok := docs["Smithy::ExampleService::Basil"]
	assert.True(t, ok, "expected type_name Smithy::ExampleService::Basil, got keys %v", docKeys(docs))
}

// TestConvert_DisableCapitalizedProperties implements scenario 6's second
// half: with capitalization disabled, keys and pointers stay lower-cased.
func TestConvert_DisableCapitalizedProperties(t *testing.T) {
	m, serviceID := buildWidgetModel(t, nil, nil)

	cfg := newTestConfig(serviceID)
	cfg.DisableCapitalizedProperties = true
	engine := derive.NewEngine(m)

	docs, err := Convert(m, cfg, BuiltIns(engine, cfg))
	require.NoError(t, err)

	node, ok := docs["Smithy::TestService::Widget"]
	require.True(t, ok, "expected type_name Smithy::TestService::Widget, got keys %v", docKeys(docs))

	props, ok := node.Get("properties")
	require.True(t, ok)
	_, hasLowerCase := props.Get("widgetId")
	assert.True(t, hasLowerCase)

	primary, ok := node.Get("primary_identifier")
	require.True(t, ok)
	assert.Equal(t, []string{"/properties/widgetId"}, stringArrayValues(t, primary))
}

// TestConvert_JSONAddPatchesSerializedDocument exercises the built-in
// JSON-add mapper, run late (order 96) over the already-stabilized tree.
func TestConvert_JSONAddPatchesSerializedDocument(t *testing.T) {
	m, serviceID := buildWidgetModel(t, nil, nil)

	cfg := newTestConfig(serviceID)
	cfg.JSONAdd = []rsconfig.JSONAddEntry{
		{Pointer: "/handlers/create/timeoutInMinutes", Value: float64(30)},
	}
	engine := derive.NewEngine(m)

	docs, err := Convert(m, cfg, BuiltIns(engine, cfg))
	require.NoError(t, err)

	node := docs["Smithy::TestService::Widget"]
	handlers, ok := node.Get("handlers")
	require.True(t, ok)
	create, ok := handlers.Get("create")
	require.True(t, ok)
	timeout, ok := create.Get("timeoutInMinutes")
	require.True(t, ok)
	assert.Equal(t, float64(30), timeout.Number)
}

// TestConvert_MissingDescriptionFails asserts that a resource without a
// documentation trait surfaces MissingDescription rather than silently
// emitting an empty description.
func TestConvert_MissingDescriptionFails(t *testing.T) {
	stringShape := model.NewShapeID(widgetNS, "String")
	resourceID := model.NewShapeID(widgetNS, "Bare")
	serviceID := model.NewShapeID(widgetNS, "BareService")

	b := model.NewBuilder()
	b.AddSimple(&model.Simple{ID: stringShape, Kind: model.KindString})
	b.AddResource(&model.Resource{
		ID:          resourceID,
		Identifiers: []model.Identifier{{Name: "id", Target: stringShape}},
	})
	b.AddService(&model.Service{ID: serviceID, Name: "BareService", Resources: []model.ShapeID{resourceID}})

	m := b.Build()
	cfg := newTestConfig(serviceID)
	engine := derive.NewEngine(m)

	_, err := Convert(m, cfg, BuiltIns(engine, cfg))
	require.Error(t, err)
}

// TestConvert_WarnsOnUnreachableResource exercises Convert's use of
// model.Model.EnumerateResources as a diagnostic cross-check against
// GetTransitiveResources: a resource the builder knows about but never
// attaches to the configured service should produce a Warn, and should
// not appear in the converted output.
func TestConvert_WarnsOnUnreachableResource(t *testing.T) {
	stringShape := model.NewShapeID(widgetNS, "String")

	createInput := model.NewShapeID(widgetNS, "WidgetCreateInput")
	readOutput := model.NewShapeID(widgetNS, "WidgetReadOutput")
	createOp := model.NewShapeID(widgetNS, "WidgetCreate")
	readOp := model.NewShapeID(widgetNS, "WidgetRead")
	resourceID := model.NewShapeID(widgetNS, "Widget")
	orphanID := model.NewShapeID(widgetNS, "Orphan")
	serviceID := model.NewShapeID(widgetNS, "TestService")

	b := model.NewBuilder()
	b.AddSimple(&model.Simple{ID: stringShape, Kind: model.KindString})

	b.AddStructure(&model.Structure{
		ID: createInput,
		Members: []*model.Member{
			model.NewMember(createInput.WithMember("widgetValidCreateProperty"), "widgetValidCreateProperty", stringShape,
				model.WithPresenceTrait(model.TraitCreateOnlyProperty)),
		},
	})
	b.AddStructure(&model.Structure{
		ID: readOutput,
		Members: []*model.Member{
			model.NewMember(readOutput.WithMember("widgetId"), "widgetId", stringShape),
		},
	})
	b.AddOperation(&model.Operation{ID: createOp, Input: &createInput})
	b.AddOperation(&model.Operation{ID: readOp, Output: &readOutput})

	b.AddResource(&model.Resource{
		ID:          resourceID,
		Identifiers: []model.Identifier{{Name: "widgetId", Target: stringShape}},
		Create:      &createOp,
		Read:        &readOp,
		Traits: map[model.TraitID]model.Trait{
			model.TraitDocumentation: model.DocumentationTrait("A widget."),
		},
	})
	b.BindIdentifier(resourceID, readOp, "widgetId", "widgetId")

	// Orphan is declared in the model but never attached to the service's
	// Resources list, so GetTransitiveResources will not reach it even
	// though EnumerateResources does.
	b.AddResource(&model.Resource{
		ID:          orphanID,
		Identifiers: []model.Identifier{{Name: "id", Target: stringShape}},
		Traits: map[model.TraitID]model.Trait{
			model.TraitDocumentation: model.DocumentationTrait("An orphan."),
		},
	})

	b.AddService(&model.Service{
		ID:        serviceID,
		Name:      "TestService",
		Resources: []model.ShapeID{resourceID},
	})

	m := b.Build()
	require.Len(t, m.EnumerateResources(), 2)

	cfg := newTestConfig(serviceID)
	engine := derive.NewEngine(m)
	logger := newSpyLogger()

	docs, err := Convert(m, cfg, BuiltIns(engine, cfg), WithLogger(logger))
	require.NoError(t, err)

	_, hasOrphan := docs["Smithy::TestService::Orphan"]
	assert.False(t, hasOrphan, "orphan resource is not reachable from the configured service and should not convert")

	require.Len(t, logger.warnings, 1)
	assert.Equal(t, "resource defined in model but not reachable from configured service", logger.warnings[0])
}
