// Package synth builds the pseudo-structure a resource's derived properties
// are projected onto before being handed to a shape-to-schema converter.
package synth

import (
	"github.com/lattice-tools/resourceschema/derive"
	"github.com/lattice-tools/resourceschema/model"
)

const suffix = "__SYNTHETIC__"

// StructureID returns the shape id of resourceID's synthetic structure.
func StructureID(resourceID model.ShapeID) model.ShapeID {
	return model.NewShapeID(resourceID.Namespace(), resourceID.Name()+suffix)
}

// Synthesize builds the synthetic structure for resource's derived
// properties and returns a model overlaying it on top of m, together with
// the structure's shape id. A property whose definition shape id resolves
// to a member in m is re-parented (same target, same traits) under the
// synthetic structure with the derived property name; otherwise (the
// identifier case) a fresh member is created whose target is the
// definition's shape id.
func Synthesize(m model.Model, resource *model.Resource, table *derive.Table) (model.Model, model.ShapeID) {
	structID := StructureID(resource.ID)
	entries := table.GetProperties()

	members := make([]*model.Member, 0, len(entries))
	for _, entry := range entries {
		members = append(members, buildMember(m, structID, entry))
	}

	structure := &model.Structure{ID: structID, Members: members}
	return &overlay{Model: m, synthetic: structure}, structID
}

func buildMember(m model.Model, structID model.ShapeID, entry derive.PropertyEntry) *model.Member {
	memberID := structID.WithMember(entry.Name)
	if original, ok := m.Member(entry.Definition.ShapeID); ok {
		return &model.Member{
			ID:     memberID,
			Name:   entry.Name,
			Target: original.Target,
			Traits: original.Traits,
		}
	}
	return &model.Member{
		ID:     memberID,
		Name:   entry.Name,
		Target: entry.Definition.ShapeID,
	}
}

// overlay adds a single synthetic structure on top of a base model without
// mutating it.
type overlay struct {
	model.Model
	synthetic *model.Structure
}

func (o *overlay) Structure(id model.ShapeID) (*model.Structure, bool) {
	if id == o.synthetic.ID {
		return o.synthetic, true
	}
	return o.Model.Structure(id)
}

var _ model.Model = (*overlay)(nil)
