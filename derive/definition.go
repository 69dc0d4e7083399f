package derive

import "github.com/lattice-tools/resourceschema/model"

// ResourcePropertyDefinition is a single property's derivation state:
// which shape its value comes from, its current constraint set, and
// whether that set has been frozen by an explicit trait annotation against
// further widening by implicit lifecycle derivation (spec.md §3).
type ResourcePropertyDefinition struct {
	ShapeID                model.ShapeID
	Constraints            ConstraintSet
	HasExplicitConstraints bool
}

// Mutability returns the collapsed, single-valued mutability of this
// property.
func (d *ResourcePropertyDefinition) Mutability() Mutability {
	return Collapse(d.Constraints)
}

// Table is the per-resource derivation table (spec.md §3): the ordered
// property set, primary and additional identifiers, and the set of
// excluded property shape ids. Built once per (model, resource) and
// immutable thereafter.
type Table struct {
	properties            *propertyTable
	primaryIdentifiers    *stringSet
	additionalIdentifiers []*stringSet
	excludedPropertyIDs   map[model.ShapeID]struct{}
}

func newTable() *Table {
	return &Table{
		properties:          newPropertyTable(),
		primaryIdentifiers:  newStringSet(),
		excludedPropertyIDs: map[model.ShapeID]struct{}{},
	}
}

// isExcluded reports whether the given shape id has been marked for
// exclusion (spec.md §4.B.6).
func (t *Table) isExcluded(id model.ShapeID) bool {
	_, ok := t.excludedPropertyIDs[id]
	return ok
}

// GetProperties returns the ordered mapping of property name to
// definition, filtered to exclude any property whose shape id was
// collected as excluded (spec.md §4.B.8).
func (t *Table) GetProperties() []PropertyEntry {
	entries := make([]PropertyEntry, 0, len(t.properties.order))
	for _, name := range t.properties.names() {
		def := t.properties.defs[name]
		if t.isExcluded(def.ShapeID) {
			continue
		}
		entries = append(entries, PropertyEntry{Name: name, Definition: def})
	}
	return entries
}

// PropertyEntry is one (name, definition) pair of a derivation table's
// published property set.
type PropertyEntry struct {
	Name       string
	Definition *ResourcePropertyDefinition
}

// GetProperty looks up a single property by name, applying the same
// exclusion filter as GetProperties.
func (t *Table) GetProperty(name string) (*ResourcePropertyDefinition, bool) {
	def, ok := t.properties.get(name)
	if !ok || t.isExcluded(def.ShapeID) {
		return nil, false
	}
	return def, true
}

// namesWithMutability returns, in property order, the names of every
// non-excluded property whose collapsed mutability equals want.
func (t *Table) namesWithMutability(want Mutability) []string {
	var names []string
	for _, entry := range t.GetProperties() {
		if entry.Definition.Mutability() == want {
			names = append(names, entry.Name)
		}
	}
	return names
}

// GetCreateOnlyProperties returns the names of properties whose sole
// constraint is CREATE_ONLY.
func (t *Table) GetCreateOnlyProperties() []string {
	return t.namesWithMutability(MutCreateOnly)
}

// GetReadOnlyProperties returns the names of properties whose sole
// constraint is READ_ONLY.
func (t *Table) GetReadOnlyProperties() []string {
	return t.namesWithMutability(MutReadOnly)
}

// GetWriteOnlyProperties returns the names of properties whose sole
// constraint is WRITE_ONLY.
func (t *Table) GetWriteOnlyProperties() []string {
	return t.namesWithMutability(MutWriteOnly)
}

// GetExcludedProperties returns the set of shape ids excluded from the
// resource's properties.
func (t *Table) GetExcludedProperties() map[model.ShapeID]struct{} {
	out := make(map[model.ShapeID]struct{}, len(t.excludedPropertyIDs))
	for id := range t.excludedPropertyIDs {
		out[id] = struct{}{}
	}
	return out
}

// GetPrimaryIdentifiers returns the resource's primary identifier property
// names.
func (t *Table) GetPrimaryIdentifiers() []string {
	return t.primaryIdentifiers.slice()
}

// GetAdditionalIdentifiers returns the resource's additional identifier
// groups, each a single-property set by construction (spec.md §4.B.7),
// in registration order.
func (t *Table) GetAdditionalIdentifiers() [][]string {
	out := make([][]string, len(t.additionalIdentifiers))
	for i, set := range t.additionalIdentifiers {
		out[i] = set.slice()
	}
	return out
}
