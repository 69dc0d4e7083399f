package model

// Model is the read-only query interface the derivation engine, the
// pseudo-structure synthesizer and the mapper pipeline make against a
// loaded service-description IR. Parsing of the source description
// language is out of scope for this module — any loader that can answer
// these queries can back the engine.
type Model interface {
	// Resource resolves a resource shape id.
	Resource(id ShapeID) (*Resource, bool)
	// Structure resolves a structure shape id.
	Structure(id ShapeID) (*Structure, bool)
	// Union resolves a union shape id.
	Union(id ShapeID) (*Union, bool)
	// Simple resolves a scalar shape id (string, integer, float, boolean,
	// blob, timestamp).
	Simple(id ShapeID) (*Simple, bool)
	// List resolves a list shape id.
	List(id ShapeID) (*List, bool)
	// Map resolves a map shape id.
	Map(id ShapeID) (*MapShape, bool)
	// Operation resolves an operation shape id.
	Operation(id ShapeID) (*Operation, bool)
	// Service resolves a service shape id.
	Service(id ShapeID) (*Service, bool)
	// Member resolves a member shape id directly (namespace#Shape$member),
	// independent of which structure or union it belongs to.
	Member(id ShapeID) (*Member, bool)

	// EnumerateResources lists every resource shape known to the model,
	// in model declaration order.
	EnumerateResources() []*Resource

	// GetTrait retrieves the named trait from the given shape id, if
	// present. shapeID may refer to a resource, a structure, or a member.
	GetTrait(shapeID ShapeID, traitID TraitID) (Trait, bool)

	// GetOperationIdentifierBindings returns, for the given resource and
	// operation, a mapping of the resource's identifier name to the name
	// of the operation input/output member bound to it. An empty map
	// means no identifier bindings are declared for that operation.
	GetOperationIdentifierBindings(resourceID, operationID ShapeID) map[string]string

	// GetTransitiveResources returns every resource shape transitively
	// reachable from the given service shape, in traversal order.
	GetTransitiveResources(serviceID ShapeID) []*Resource
}
