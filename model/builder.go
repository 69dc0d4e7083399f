package model

// Builder assembles an InMemory model. Methods return the builder so
// calls can be chained; Build() returns the finished, read-only model.
type Builder struct {
	model *InMemory
}

// NewBuilder creates an empty model builder.
func NewBuilder() *Builder {
	return &Builder{
		model: &InMemory{
			resources:          map[ShapeID]*Resource{},
			structures:         map[ShapeID]*Structure{},
			unions:             map[ShapeID]*Union{},
			simples:            map[ShapeID]*Simple{},
			lists:              map[ShapeID]*List{},
			maps:               map[ShapeID]*MapShape{},
			operations:         map[ShapeID]*Operation{},
			services:           map[ShapeID]*Service{},
			members:            map[ShapeID]*Member{},
			identifierBindings: map[ShapeID]map[ShapeID]map[string]string{},
		},
	}
}

// AddResource registers a resource shape.
func (b *Builder) AddResource(r *Resource) *Builder {
	b.model.resources[r.ID] = r
	b.model.resourceOrder = append(b.model.resourceOrder, r.ID)
	return b
}

// AddStructure registers a structure shape, indexing its members by their
// own shape ids as well.
func (b *Builder) AddStructure(s *Structure) *Builder {
	b.model.structures[s.ID] = s
	for _, member := range s.Members {
		b.model.members[member.ID] = member
	}
	return b
}

// AddUnion registers a union shape and its members.
func (b *Builder) AddUnion(u *Union) *Builder {
	b.model.unions[u.ID] = u
	for _, member := range u.Members {
		b.model.members[member.ID] = member
	}
	return b
}

// AddSimple registers a scalar shape.
func (b *Builder) AddSimple(s *Simple) *Builder {
	b.model.simples[s.ID] = s
	return b
}

// AddList registers a list shape.
func (b *Builder) AddList(l *List) *Builder {
	b.model.lists[l.ID] = l
	return b
}

// AddMap registers a map shape.
func (b *Builder) AddMap(m *MapShape) *Builder {
	b.model.maps[m.ID] = m
	return b
}

// AddOperation registers an operation shape.
func (b *Builder) AddOperation(op *Operation) *Builder {
	b.model.operations[op.ID] = op
	return b
}

// AddService registers a service shape.
func (b *Builder) AddService(s *Service) *Builder {
	b.model.services[s.ID] = s
	return b
}

// BindIdentifier records that, for the given resource and operation,
// the identifier named identifierName is carried by the operation's
// input or output member named memberName.
func (b *Builder) BindIdentifier(resourceID, operationID ShapeID, identifierName, memberName string) *Builder {
	byOp, ok := b.model.identifierBindings[resourceID]
	if !ok {
		byOp = map[ShapeID]map[string]string{}
		b.model.identifierBindings[resourceID] = byOp
	}
	bindings, ok := byOp[operationID]
	if !ok {
		bindings = map[string]string{}
		byOp[operationID] = bindings
	}
	bindings[identifierName] = memberName
	return b
}

// Build returns the assembled model.
func (b *Builder) Build() *InMemory {
	return b.model
}

// NewMember is a convenience constructor for a structure/union member.
func NewMember(id ShapeID, name string, target ShapeID, traits ...TraitEntry) *Member {
	return &Member{
		ID:     id,
		Name:   name,
		Target: target,
		Traits: traitMap(traits),
	}
}

// TraitEntry is a (traitID, value) pair passed to shape constructors.
type TraitEntry struct {
	ID    TraitID
	Value Trait
}

// WithTrait builds a TraitEntry carrying a value.
func WithTrait(id TraitID, value Trait) TraitEntry {
	return TraitEntry{ID: id, Value: value}
}

// WithPresenceTrait builds a TraitEntry for a presence-only trait.
func WithPresenceTrait(id TraitID) TraitEntry {
	return TraitEntry{ID: id, Value: Presence{}}
}

func traitMap(entries []TraitEntry) map[TraitID]Trait {
	if len(entries) == 0 {
		return nil
	}
	traits := make(map[TraitID]Trait, len(entries))
	for _, entry := range entries {
		traits[entry.ID] = entry.Value
	}
	return traits
}
