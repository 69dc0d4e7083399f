// Package rsconfig defines the configuration surface consumed by the
// mapper pipeline and the converter assembly step.
package rsconfig

import (
	"github.com/lattice-tools/resourceschema/model"
	"github.com/lattice-tools/resourceschema/schemaerrors"
)

// DefaultExternalDocKeys are the externalDocumentation link names tried, in
// order, for documentation_url; New copies them into Config.ExternalDocKeys.
var DefaultExternalDocKeys = []string{"Documentation", "User Guide"}

// DefaultSourceDocKeys are the externalDocumentation link names tried, in
// order, for source_url.
var DefaultSourceDocKeys = []string{"Source", "Source Code"}

// DefaultBlobFormat is the format string applied to blob schemas when the
// configuration does not override it.
const DefaultBlobFormat = "byte"

// JSONAddEntry is one (json_pointer, value) patch the JSON-add mapper
// applies to a resource's serialized document. Kept as an ordered slice
// rather than a map so patches apply in the order the caller declared them.
type JSONAddEntry struct {
	Pointer string
	Value   interface{}
}

// Config is the engine's configuration surface (spec.md §6).
type Config struct {
	// OrganizationName is the first segment of every emitted type_name.
	// Required.
	OrganizationName string
	// Service is the root service shape id derivation runs against.
	// Required.
	Service model.ShapeID
	// ServiceName overrides the service shape's name in type_name when set.
	ServiceName string
	// DisableCapitalizedProperties turns off capitalization of property
	// names in output.
	DisableCapitalizedProperties bool
	// DefaultBlobFormat is the format string applied to blob schemas.
	DefaultBlobFormat string
	// ExternalDocKeys are the ordered candidate link names for
	// documentation_url.
	ExternalDocKeys []string
	// SourceDocKeys are the ordered candidate link names for source_url.
	SourceDocKeys []string
	// JSONAdd lists post-processing patches applied by the JSON-add mapper.
	JSONAdd []JSONAddEntry
	// DisableDeprecatedPropertyGeneration suppresses deprecated_properties
	// population.
	DisableDeprecatedPropertyGeneration bool
}

// New builds a Config with every documented default applied, for the two
// required fields.
func New(organizationName string, service model.ShapeID) *Config {
	return &Config{
		OrganizationName:  organizationName,
		Service:           service,
		DefaultBlobFormat: DefaultBlobFormat,
		ExternalDocKeys:   append([]string(nil), DefaultExternalDocKeys...),
		SourceDocKeys:     append([]string(nil), DefaultSourceDocKeys...),
	}
}

// Validate checks the two required fields (spec.md §7 MissingConfiguration).
func (c *Config) Validate() error {
	if c.OrganizationName == "" {
		return schemaerrors.MissingConfiguration("organization_name")
	}
	if c.Service == "" {
		return schemaerrors.MissingConfiguration("service")
	}
	return nil
}

// ResolveServiceName returns config.ServiceName if set, otherwise the
// service shape's own name.
func (c *Config) ResolveServiceName(service *model.Service) string {
	if c.ServiceName != "" {
		return c.ServiceName
	}
	return service.Name
}

// ResolveBlobFormat returns the configured blob format, falling back to
// DefaultBlobFormat when unset.
func (c *Config) ResolveBlobFormat() string {
	if c.DefaultBlobFormat == "" {
		return DefaultBlobFormat
	}
	return c.DefaultBlobFormat
}
