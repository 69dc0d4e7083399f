// Package schemaerrors defines the single error category surfaced by the
// resourceschema engine, following the reason-code-plus-wrapped-error shape
// used throughout the teacher's error handling.
package schemaerrors

import "fmt"

// ReasonCode discriminates the kind of failure that produced a
// ResourceSchemaError. All failures are fatal at the point they are raised;
// the engine has no retry logic.
type ReasonCode string

const (
	// ReasonCodeMissingConfiguration is returned when a required
	// configuration option (organization_name or service) was not set.
	ReasonCodeMissingConfiguration ReasonCode = "missing_configuration"
	// ReasonCodeShapeNotFound is returned when a referenced shape id
	// does not resolve against the model.
	ReasonCodeShapeNotFound ReasonCode = "shape_not_found"
	// ReasonCodeShapeTypeMismatch is returned when a resolved shape is
	// not of the expected kind, e.g. a service shape id resolves to a
	// structure.
	ReasonCodeShapeTypeMismatch ReasonCode = "shape_type_mismatch"
	// ReasonCodeEmptyProperties is returned when a resource produced
	// zero properties after derivation and exclusion.
	ReasonCodeEmptyProperties ReasonCode = "empty_properties"
	// ReasonCodeMissingDescription is returned when a resource lacks a
	// documentation trait.
	ReasonCodeMissingDescription ReasonCode = "missing_description"
	// ReasonCodeInvalidJSONPointer is returned when a json_add
	// configuration key is not a well-formed JSON pointer.
	ReasonCodeInvalidJSONPointer ReasonCode = "invalid_json_pointer"
	// ReasonCodeBatchConversionFailed is returned when converting a
	// service's transitive resources produces one or more per-resource
	// failures; ChildErrors holds each one.
	ReasonCodeBatchConversionFailed ReasonCode = "batch_conversion_failed"
)

// ResourceSchemaError is the error type this module raises for the failure
// kinds listed above. It carries a ReasonCode discriminator so
// callers can branch on failure kind without string matching, and wraps the
// underlying error for a human-readable message.
type ResourceSchemaError struct {
	ReasonCode ReasonCode
	Err        error
	// ChildErrors holds any errors accumulated while processing more than
	// one resource or member, e.g. from a batch conversion of a service's
	// transitive resources.
	ChildErrors []error
}

func (e *ResourceSchemaError) Error() string {
	if len(e.ChildErrors) == 0 {
		return fmt.Sprintf("resource schema error (%s): %s", e.ReasonCode, e.Err.Error())
	}
	label := "errors"
	if len(e.ChildErrors) == 1 {
		label = "error"
	}
	return fmt.Sprintf(
		"resource schema error (%s) with %d child %s: %s",
		e.ReasonCode,
		len(e.ChildErrors),
		label,
		e.Err.Error(),
	)
}

func (e *ResourceSchemaError) Unwrap() error {
	return e.Err
}

// MissingConfiguration builds a ResourceSchemaError for a missing required
// configuration option.
func MissingConfiguration(option string) error {
	return &ResourceSchemaError{
		ReasonCode: ReasonCodeMissingConfiguration,
		Err:        fmt.Errorf("configuration option %q is required", option),
	}
}

// ShapeNotFound builds a ResourceSchemaError for a shape id that does not
// resolve against the model.
func ShapeNotFound(shapeID string) error {
	return &ResourceSchemaError{
		ReasonCode: ReasonCodeShapeNotFound,
		Err:        fmt.Errorf("shape %q was not found in the model", shapeID),
	}
}

// ShapeTypeMismatch builds a ResourceSchemaError for a shape that resolved
// but was not of the expected kind.
func ShapeTypeMismatch(shapeID string, expectedKind string) error {
	return &ResourceSchemaError{
		ReasonCode: ReasonCodeShapeTypeMismatch,
		Err:        fmt.Errorf("shape %q is not a %s", shapeID, expectedKind),
	}
}

// EmptyProperties builds a ResourceSchemaError for a resource that produced
// no properties after derivation and exclusion.
func EmptyProperties(resourceID string) error {
	return &ResourceSchemaError{
		ReasonCode: ReasonCodeEmptyProperties,
		Err:        fmt.Errorf("resource %q produced no properties after derivation", resourceID),
	}
}

// MissingDescription builds a ResourceSchemaError for a resource that lacks
// a documentation trait.
func MissingDescription(resourceID string) error {
	return &ResourceSchemaError{
		ReasonCode: ReasonCodeMissingDescription,
		Err:        fmt.Errorf("resource %q has no documentation trait to derive a description from", resourceID),
	}
}

// InvalidJSONPointer builds a ResourceSchemaError for a malformed
// json_add configuration key.
func InvalidJSONPointer(pointer string, cause error) error {
	return &ResourceSchemaError{
		ReasonCode: ReasonCodeInvalidJSONPointer,
		Err:        fmt.Errorf("invalid json pointer %q: %w", pointer, cause),
	}
}

// Join collects a main error plus any child errors accumulated while
// converting a set of resources, returning nil if there is nothing to
// report.
func Join(reasonCode ReasonCode, summary error, children []error) error {
	if summary == nil && len(children) == 0 {
		return nil
	}
	if summary == nil {
		summary = fmt.Errorf("%d resource schema conversions failed", len(children))
	}
	return &ResourceSchemaError{
		ReasonCode:  reasonCode,
		Err:         summary,
		ChildErrors: children,
	}
}
