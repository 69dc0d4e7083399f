package model

import "strings"

// TraitID identifies a trait definition, itself a ShapeID in a real model
// (e.g. "aws.cloudformation#readOnlyProperty"). Declared as a distinct
// type so call sites read as trait lookups rather than arbitrary shape
// lookups.
type TraitID string

// The trait ids the derivation engine recognises. Any other trait present
// on a shape is opaque to this package and ignored. Per spec.md §9's open
// question, legacy unsuffixed trait names (e.g. "writeOnly") are not
// recognised — only the current "...Property"-suffixed names are.
const (
	TraitResource              TraitID = "aws.cloudformation#resource"
	TraitAdditionalIdentifier  TraitID = "aws.cloudformation#additionalIdentifier"
	TraitExcludeProperty       TraitID = "aws.cloudformation#excludeProperty"
	TraitCreateOnlyProperty    TraitID = "aws.cloudformation#createOnlyProperty"
	TraitReadOnlyProperty      TraitID = "aws.cloudformation#readOnlyProperty"
	TraitWriteOnlyProperty     TraitID = "aws.cloudformation#writeOnlyProperty"
	TraitMutableProperty       TraitID = "aws.cloudformation#mutableProperty"
	TraitPropertyName          TraitID = "aws.cloudformation#propertyName"
	TraitDocumentation         TraitID = "smithy.api#documentation"
	TraitExternalDocumentation TraitID = "smithy.api#externalDocumentation"
	TraitDeprecated            TraitID = "smithy.api#deprecated"
)

// Trait is the value carried by a trait. Most of the traits the engine
// looks for are presence-only markers (the zero value, Presence{}); a few
// carry structured data, represented by the types below.
type Trait interface{}

// Presence is the value used for traits whose only meaning is being
// attached to a shape at all: additionalIdentifier, excludeProperty,
// createOnlyProperty, readOnlyProperty, writeOnlyProperty, mutableProperty,
// deprecated.
type Presence struct{}

// ResourceTrait is the value of the "resource" trait on a resource shape.
type ResourceTrait struct {
	// Name overrides the resource's name in the generated type_name, when
	// set.
	Name string
	// AdditionalSchemas lists structure shape ids whose members are
	// folded into the resource's properties alongside the lifecycle
	// operations (spec.md §4.B.5).
	AdditionalSchemas []ShapeID
}

// DocumentationTrait is the value of the "documentation" trait, a free-text
// description used as ResourceSchema.Description.
type DocumentationTrait string

// ExternalDocumentationTrait is the value of the "externalDocumentation"
// trait: an ordered mapping of link name to URL. Represented as a slice to
// preserve the author's ordering, since the documentation mapper picks the
// first matching key.
type ExternalDocumentationTrait []ExternalDocEntry

// ExternalDocEntry is one link-name/URL pair of an ExternalDocumentationTrait.
type ExternalDocEntry struct {
	Name string
	URL  string
}

// Lookup returns the URL for the first entry whose name matches one of the
// candidate keys case-insensitively, trying candidates in order.
func (t ExternalDocumentationTrait) Lookup(candidates []string) (string, bool) {
	for _, candidate := range candidates {
		for _, entry := range t {
			if strings.EqualFold(entry.Name, candidate) {
				return entry.URL, true
			}
		}
	}
	return "", false
}
