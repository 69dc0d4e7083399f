package derive

import (
	"sync"

	"github.com/lattice-tools/resourceschema/model"
	"github.com/lattice-tools/resourceschema/rslog"
	"github.com/lattice-tools/resourceschema/schemaerrors"
)

// Engine runs the derivation algorithm against a single model, caching
// each resource's Table for the lifetime of the engine (spec.md §5:
// "memoized keyed by resource id for the lifetime of the containing
// derivation context; they are immutable after construction"). Grounded
// on the cache-by-id pattern of a provider resource registry.
type Engine struct {
	model  model.Model
	logger rslog.Logger

	mu    sync.RWMutex
	cache map[model.ShapeID]*Table
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches a logger used for derivation diagnostics.
func WithLogger(logger rslog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine builds a derivation engine over m.
func NewEngine(m model.Model, opts ...Option) *Engine {
	e := &Engine{
		model:  m,
		logger: rslog.NewNopLogger(),
		cache:  map[model.ShapeID]*Table{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Derive returns the derivation table for resourceID, computing and
// caching it on first access.
func (e *Engine) Derive(resourceID model.ShapeID) (*Table, error) {
	e.mu.RLock()
	if table, ok := e.cache[resourceID]; ok {
		e.mu.RUnlock()
		return table, nil
	}
	e.mu.RUnlock()

	resource, ok := e.model.Resource(resourceID)
	if !ok {
		return nil, schemaerrors.ShapeNotFound(string(resourceID))
	}

	e.logger.Debug("deriving resource properties", rslog.StringLogField("resource_id", string(resourceID)))

	table := derive(e.model, resource)

	e.mu.Lock()
	defer e.mu.Unlock()
	if existing, ok := e.cache[resourceID]; ok {
		return existing, nil
	}
	e.cache[resourceID] = table
	return table, nil
}

// GetProperties returns resourceID's non-excluded properties in derivation
// order.
func (e *Engine) GetProperties(resourceID model.ShapeID) ([]PropertyEntry, error) {
	table, err := e.Derive(resourceID)
	if err != nil {
		return nil, err
	}
	return table.GetProperties(), nil
}

// GetProperty looks up a single property of resourceID by name.
func (e *Engine) GetProperty(resourceID model.ShapeID, name string) (*ResourcePropertyDefinition, error) {
	table, err := e.Derive(resourceID)
	if err != nil {
		return nil, err
	}
	def, ok := table.GetProperty(name)
	if !ok {
		return nil, nil
	}
	return def, nil
}

// GetCreateOnlyProperties returns resourceID's create-only property names.
func (e *Engine) GetCreateOnlyProperties(resourceID model.ShapeID) ([]string, error) {
	table, err := e.Derive(resourceID)
	if err != nil {
		return nil, err
	}
	return table.GetCreateOnlyProperties(), nil
}

// GetReadOnlyProperties returns resourceID's read-only property names.
func (e *Engine) GetReadOnlyProperties(resourceID model.ShapeID) ([]string, error) {
	table, err := e.Derive(resourceID)
	if err != nil {
		return nil, err
	}
	return table.GetReadOnlyProperties(), nil
}

// GetWriteOnlyProperties returns resourceID's write-only property names.
func (e *Engine) GetWriteOnlyProperties(resourceID model.ShapeID) ([]string, error) {
	table, err := e.Derive(resourceID)
	if err != nil {
		return nil, err
	}
	return table.GetWriteOnlyProperties(), nil
}

// GetExcludedProperties returns the shape ids excluded from resourceID's
// properties.
func (e *Engine) GetExcludedProperties(resourceID model.ShapeID) (map[model.ShapeID]struct{}, error) {
	table, err := e.Derive(resourceID)
	if err != nil {
		return nil, err
	}
	return table.GetExcludedProperties(), nil
}

// GetPrimaryIdentifiers returns resourceID's primary identifier property
// names.
func (e *Engine) GetPrimaryIdentifiers(resourceID model.ShapeID) ([]string, error) {
	table, err := e.Derive(resourceID)
	if err != nil {
		return nil, err
	}
	return table.GetPrimaryIdentifiers(), nil
}

// GetAdditionalIdentifiers returns resourceID's additional identifier
// groups.
func (e *Engine) GetAdditionalIdentifiers(resourceID model.ShapeID) ([][]string, error) {
	table, err := e.Derive(resourceID)
	if err != nil {
		return nil, err
	}
	return table.GetAdditionalIdentifiers(), nil
}
