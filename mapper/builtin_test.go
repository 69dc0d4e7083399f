package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-tools/resourceschema/derive"
	"github.com/lattice-tools/resourceschema/model"
	"github.com/lattice-tools/resourceschema/rsconfig"
)

// TestDeprecatedMapper_MarksDeprecatedMember asserts the built-in
// deprecated mapper collects a deprecated read-output member's resolved
// name into deprecated_properties.
func TestDeprecatedMapper_MarksDeprecatedMember(t *testing.T) {
	stringShape := model.NewShapeID(widgetNS, "String")
	readOutput := model.NewShapeID(widgetNS, "GadgetReadOutput")
	readOp := model.NewShapeID(widgetNS, "GadgetRead")
	resourceID := model.NewShapeID(widgetNS, "Gadget")
	serviceID := model.NewShapeID(widgetNS, "GadgetService")

	b := model.NewBuilder()
	b.AddSimple(&model.Simple{ID: stringShape, Kind: model.KindString})
	b.AddStructure(&model.Structure{
		ID: readOutput,
		Members: []*model.Member{
			model.NewMember(readOutput.WithMember("gadgetId"), "gadgetId", stringShape),
			model.NewMember(readOutput.WithMember("gadgetOldProperty"), "gadgetOldProperty", stringShape,
				model.WithPresenceTrait(model.TraitDeprecated)),
		},
	})
	b.AddOperation(&model.Operation{ID: readOp, Output: &readOutput})
	b.AddResource(&model.Resource{
		ID:          resourceID,
		Identifiers: []model.Identifier{{Name: "gadgetId", Target: stringShape}},
		Read:        &readOp,
		Traits: map[model.TraitID]model.Trait{
			model.TraitDocumentation: model.DocumentationTrait("A gadget."),
		},
	})
	b.BindIdentifier(resourceID, readOp, "gadgetId", "gadgetId")
	b.AddService(&model.Service{ID: serviceID, Name: "GadgetService", Resources: []model.ShapeID{resourceID}})

	m := b.Build()
	cfg := rsconfig.New("Org", serviceID)
	engine := derive.NewEngine(m)

	docs, err := Convert(m, cfg, BuiltIns(engine, cfg))
	require.NoError(t, err)

	node := docs["Org::GadgetService::Gadget"]
	deprecated, ok := node.Get("deprecated_properties")
	require.True(t, ok)
	assert.Equal(t, []string{"GadgetOldProperty"}, stringArrayValues(t, deprecated))
}

// TestDeprecatedMapper_Disabled asserts the config flag suppresses
// deprecated_properties population entirely.
func TestDeprecatedMapper_Disabled(t *testing.T) {
	stringShape := model.NewShapeID(widgetNS, "String")
	readOutput := model.NewShapeID(widgetNS, "GizmoReadOutput")
	readOp := model.NewShapeID(widgetNS, "GizmoRead")
	resourceID := model.NewShapeID(widgetNS, "Gizmo")
	serviceID := model.NewShapeID(widgetNS, "GizmoService")

	b := model.NewBuilder()
	b.AddSimple(&model.Simple{ID: stringShape, Kind: model.KindString})
	b.AddStructure(&model.Structure{
		ID: readOutput,
		Members: []*model.Member{
			model.NewMember(readOutput.WithMember("gizmoId"), "gizmoId", stringShape),
			model.NewMember(readOutput.WithMember("gizmoOldProperty"), "gizmoOldProperty", stringShape,
				model.WithPresenceTrait(model.TraitDeprecated)),
		},
	})
	b.AddOperation(&model.Operation{ID: readOp, Output: &readOutput})
	b.AddResource(&model.Resource{
		ID:          resourceID,
		Identifiers: []model.Identifier{{Name: "gizmoId", Target: stringShape}},
		Read:        &readOp,
		Traits: map[model.TraitID]model.Trait{
			model.TraitDocumentation: model.DocumentationTrait("A gizmo."),
		},
	})
	b.BindIdentifier(resourceID, readOp, "gizmoId", "gizmoId")
	b.AddService(&model.Service{ID: serviceID, Name: "GizmoService", Resources: []model.ShapeID{resourceID}})

	m := b.Build()
	cfg := rsconfig.New("Org", serviceID)
	cfg.DisableDeprecatedPropertyGeneration = true
	engine := derive.NewEngine(m)

	docs, err := Convert(m, cfg, BuiltIns(engine, cfg))
	require.NoError(t, err)

	node := docs["Org::GizmoService::Gizmo"]
	_, ok := node.Get("deprecated_properties")
	assert.False(t, ok)
}
