package model

// InMemory is a map-backed Model implementation, a minimal reference
// implementation of the query interface for callers that do not already
// have an IR loader, and the fixture type used by this module's own tests.
// Constructed once via Builder, then treated as read-only — mirrors the
// teacher's registry-over-map pattern (construct, then serve lookups from
// the map without further mutation).
type InMemory struct {
	resources  map[ShapeID]*Resource
	structures map[ShapeID]*Structure
	unions     map[ShapeID]*Union
	simples    map[ShapeID]*Simple
	lists      map[ShapeID]*List
	maps       map[ShapeID]*MapShape
	operations map[ShapeID]*Operation
	services   map[ShapeID]*Service
	members    map[ShapeID]*Member

	resourceOrder []ShapeID

	// identifierBindings[resourceID][operationID][identifierName] = memberName
	identifierBindings map[ShapeID]map[ShapeID]map[string]string
}

func (m *InMemory) Resource(id ShapeID) (*Resource, bool) {
	r, ok := m.resources[id]
	return r, ok
}

func (m *InMemory) Structure(id ShapeID) (*Structure, bool) {
	s, ok := m.structures[id]
	return s, ok
}

func (m *InMemory) Union(id ShapeID) (*Union, bool) {
	u, ok := m.unions[id]
	return u, ok
}

func (m *InMemory) Simple(id ShapeID) (*Simple, bool) {
	s, ok := m.simples[id]
	return s, ok
}

func (m *InMemory) List(id ShapeID) (*List, bool) {
	l, ok := m.lists[id]
	return l, ok
}

func (m *InMemory) Map(id ShapeID) (*MapShape, bool) {
	mp, ok := m.maps[id]
	return mp, ok
}

func (m *InMemory) Operation(id ShapeID) (*Operation, bool) {
	op, ok := m.operations[id]
	return op, ok
}

func (m *InMemory) Service(id ShapeID) (*Service, bool) {
	s, ok := m.services[id]
	return s, ok
}

func (m *InMemory) Member(id ShapeID) (*Member, bool) {
	mem, ok := m.members[id]
	return mem, ok
}

func (m *InMemory) EnumerateResources() []*Resource {
	resources := make([]*Resource, 0, len(m.resourceOrder))
	for _, id := range m.resourceOrder {
		resources = append(resources, m.resources[id])
	}
	return resources
}

func (m *InMemory) GetTrait(shapeID ShapeID, traitID TraitID) (Trait, bool) {
	if res, ok := m.resources[shapeID]; ok {
		t, ok := res.Traits[traitID]
		return t, ok
	}
	if st, ok := m.structures[shapeID]; ok {
		t, ok := st.Traits[traitID]
		return t, ok
	}
	if u, ok := m.unions[shapeID]; ok {
		t, ok := u.Traits[traitID]
		return t, ok
	}
	if mem, ok := m.members[shapeID]; ok {
		t, ok := mem.Traits[traitID]
		return t, ok
	}
	if svc, ok := m.services[shapeID]; ok {
		t, ok := svc.Traits[traitID]
		return t, ok
	}
	return nil, false
}

func (m *InMemory) GetOperationIdentifierBindings(resourceID, operationID ShapeID) map[string]string {
	byOp, ok := m.identifierBindings[resourceID]
	if !ok {
		return map[string]string{}
	}
	bindings, ok := byOp[operationID]
	if !ok {
		return map[string]string{}
	}
	return bindings
}

func (m *InMemory) GetTransitiveResources(serviceID ShapeID) []*Resource {
	svc, ok := m.services[serviceID]
	if !ok {
		return nil
	}
	resources := make([]*Resource, 0, len(svc.Resources))
	for _, id := range svc.Resources {
		if r, ok := m.resources[id]; ok {
			resources = append(resources, r)
		}
	}
	return resources
}

var _ Model = (*InMemory)(nil)
