package derive

import "github.com/lattice-tools/resourceschema/model"

// lifecycleStep describes one row of spec.md §4.B.2's table: which
// lifecycle slot to read from the resource, which side of its operation
// (input or output) supplies the structure to process, the default
// constraint set applied to new properties, and the updater applied to
// already-seen, non-explicit properties.
type lifecycleStep struct {
	slot               func(*model.Resource) *model.ShapeID
	side               func(*model.Operation) *model.ShapeID
	defaultConstraints ConstraintSet
	updater            func(ConstraintSet) ConstraintSet
}

var lifecycleSteps = []lifecycleStep{
	{
		slot:               func(r *model.Resource) *model.ShapeID { return r.Read },
		side:               func(op *model.Operation) *model.ShapeID { return op.Output },
		defaultConstraints: NewConstraintSet(ReadOnly),
		updater:            addReadOnly,
	},
	{
		slot:               func(r *model.Resource) *model.ShapeID { return r.Put },
		side:               func(op *model.Operation) *model.ShapeID { return op.Input },
		defaultConstraints: NewConstraintSet(WriteOnly),
		updater:            addWriteOnly,
	},
	{
		slot:               func(r *model.Resource) *model.ShapeID { return r.Create },
		side:               func(op *model.Operation) *model.ShapeID { return op.Input },
		defaultConstraints: NewConstraintSet(CreateOnly),
		updater:            addCreateOnly,
	},
	{
		slot:               func(r *model.Resource) *model.ShapeID { return r.Update },
		side:               func(op *model.Operation) *model.ShapeID { return op.Input },
		defaultConstraints: NewConstraintSet(WriteOnly),
		updater:            addWriteOnly,
	},
}

// derive runs the full §4.B algorithm for a single resource against m,
// producing a fresh, immutable Table.
func derive(m model.Model, resource *model.Resource) *Table {
	table := newTable()

	seedIdentifiers(resource, table)

	var processedStructures []model.ShapeID

	for _, step := range lifecycleSteps {
		opID := step.slot(resource)
		if opID == nil {
			continue
		}
		op, ok := m.Operation(*opID)
		if !ok {
			continue
		}
		structureID := step.side(op)
		if structureID != nil {
			processStructure(m, resource.ID, *opID, *structureID, table, step.defaultConstraints, step.updater, true)
			processedStructures = append(processedStructures, *structureID)
		}

		if op.Input != nil {
			collectAdditionalIdentifiers(m, resource, *opID, *op.Input, table, opID == resource.Read)
		}
	}

	if trait, ok := m.GetTrait(resource.ID, model.TraitResource); ok {
		if resourceTrait, ok := trait.(model.ResourceTrait); ok {
			for _, schemaID := range resourceTrait.AdditionalSchemas {
				processStructure(m, resource.ID, "", schemaID, table, ConstraintSet{}, identity, false)
				processedStructures = append(processedStructures, schemaID)
			}
		}
	}

	visited := map[model.ShapeID]bool{}
	for _, structureID := range processedStructures {
		collectExcluded(m, table, structureID, visited)
	}

	return table
}

func seedIdentifiers(resource *model.Resource, table *Table) {
	defaultConstraints := NewConstraintSet(ReadOnly)
	if resource.Put != nil {
		defaultConstraints = NewConstraintSet(CreateOnly)
	}
	for _, ident := range resource.Identifiers {
		table.primaryIdentifiers.add(ident.Name)
		table.properties.set(ident.Name, &ResourcePropertyDefinition{
			ShapeID:                ident.Target,
			Constraints:            defaultConstraints.Clone(),
			HasExplicitConstraints: true,
		})
	}
}

// processStructure implements spec.md §4.B.3 over a single structure.
// When skipIdentifiers is true, members bound to an identifier of
// operationID are skipped (their mutability was fixed in seedIdentifiers);
// additional-schema passes (spec.md §4.B.5) pass skipIdentifiers=false.
func processStructure(
	m model.Model,
	resourceID model.ShapeID,
	operationID model.ShapeID,
	structureID model.ShapeID,
	table *Table,
	defaultConstraints ConstraintSet,
	updater func(ConstraintSet) ConstraintSet,
	skipIdentifiers bool,
) {
	structure, ok := m.Structure(structureID)
	if !ok {
		return
	}

	boundMembers := map[string]struct{}{}
	if skipIdentifiers {
		for _, memberName := range m.GetOperationIdentifierBindings(resourceID, operationID) {
			boundMembers[memberName] = struct{}{}
		}
	}

	for _, member := range structure.Members {
		if skipIdentifiers {
			if _, bound := boundMembers[member.Name]; bound {
				continue
			}
		}

		name := effectiveName(member)
		explicit := explicitConstraints(member)
		current, exists := table.properties.get(name)

		switch {
		case !exists || len(explicit) > 0:
			constraints := defaultConstraints.Clone()
			if len(explicit) > 0 {
				constraints = explicit
			}
			table.properties.set(name, &ResourcePropertyDefinition{
				ShapeID:                member.ID,
				Constraints:            constraints,
				HasExplicitConstraints: len(explicit) > 0,
			})
		case current.HasExplicitConstraints:
			// Frozen against further widening; leave unchanged.
		default:
			current.Constraints = updater(current.Constraints)
		}
	}
}

// explicitConstraints implements spec.md §4.B.3 step 2's priority: the
// first matching trait wins.
func explicitConstraints(member *model.Member) ConstraintSet {
	if member.HasTrait(model.TraitReadOnlyProperty) {
		return NewConstraintSet(ReadOnly)
	}
	if member.HasTrait(model.TraitCreateOnlyProperty) {
		return NewConstraintSet(CreateOnly)
	}
	if member.HasTrait(model.TraitWriteOnlyProperty) {
		return NewConstraintSet(WriteOnly)
	}
	return ConstraintSet{}
}

// effectiveName applies the propertyName trait override, falling back to
// the member's declared name.
func effectiveName(member *model.Member) string {
	if raw, ok := member.Traits[model.TraitPropertyName]; ok {
		if name, ok := raw.(string); ok && name != "" {
			return name
		}
	}
	return member.Name
}

// collectAdditionalIdentifiers implements the additional-identifier
// collection noted in spec.md §4.B.2: only read's input structure is
// scanned, and only members carrying the additionalIdentifier trait
// contribute.
func collectAdditionalIdentifiers(
	m model.Model,
	resource *model.Resource,
	operationID model.ShapeID,
	inputStructureID model.ShapeID,
	table *Table,
	isReadOperation bool,
) {
	if !isReadOperation {
		return
	}
	structure, ok := m.Structure(inputStructureID)
	if !ok {
		return
	}
	for _, member := range structure.Members {
		if !member.HasTrait(model.TraitAdditionalIdentifier) {
			continue
		}
		registerAdditionalIdentifier(table, member)
	}
}

// registerAdditionalIdentifier implements spec.md §4.B.7.
func registerAdditionalIdentifier(table *Table, member *model.Member) {
	name := effectiveName(member)

	set := newStringSet()
	set.add(name)
	table.additionalIdentifiers = append(table.additionalIdentifiers, set)

	current, exists := table.properties.get(name)
	if !exists {
		table.properties.set(name, &ResourcePropertyDefinition{
			ShapeID:                member.ID,
			Constraints:            NewConstraintSet(ReadOnly),
			HasExplicitConstraints: true,
		})
		return
	}
	if current.HasExplicitConstraints {
		return
	}
	current.Constraints = NewConstraintSet(ReadOnly)
	current.HasExplicitConstraints = true
}

// collectExcluded implements spec.md §4.B.6: a depth-first traversal of
// member targets starting from a processed structure, recursing into
// structure targets and stopping at any other target kind. Shared targets
// are memoised per engine run via visited so the DAG is walked once.
func collectExcluded(m model.Model, table *Table, structureID model.ShapeID, visited map[model.ShapeID]bool) {
	if visited[structureID] {
		return
	}
	visited[structureID] = true

	structure, ok := m.Structure(structureID)
	if !ok {
		return
	}

	for _, member := range structure.Members {
		if member.HasTrait(model.TraitExcludeProperty) {
			table.excludedPropertyIDs[member.ID] = struct{}{}
		}
		if _, ok := m.Structure(member.Target); ok {
			collectExcluded(m, table, member.Target, visited)
		}
	}
}
