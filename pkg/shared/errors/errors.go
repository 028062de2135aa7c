package errors

import "fmt"

// NotFoundError reports a reference to a catalog entity that does not exist.
// Absence on query paths is represented by empty results instead; this type is
// reserved for operations asked to act on a specific missing entity.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in catalog", e.Kind, e.Name)
}

// NewNotFoundError creates a NotFoundError for the given entity kind and name.
func NewNotFoundError(kind, name string) error {
	return &NotFoundError{Kind: kind, Name: name}
}

// MalformedEntryError reports a single catalog or pattern file entry that
// failed to parse. Loads recover at entry granularity: the error is recorded
// as a diagnostic and the surrounding load continues.
type MalformedEntryError struct {
	Path  string
	Entry string
	Cause error
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed entry %q in %q: %v", e.Entry, e.Path, e.Cause)
}

func (e *MalformedEntryError) Unwrap() error {
	return e.Cause
}

// NewMalformedEntryError creates a MalformedEntryError carrying the file path
// and the entry identifier.
func NewMalformedEntryError(path, entry string, cause error) error {
	return &MalformedEntryError{Path: path, Entry: entry, Cause: cause}
}

// InvalidTransformationError reports an unrecognized evolution name. This is a
// caller error and is rejected before any transformation is attempted.
type InvalidTransformationError struct {
	Name      string
	Supported []string
}

func (e *InvalidTransformationError) Error() string {
	return fmt.Sprintf("unknown transformation %q, supported: %v", e.Name, e.Supported)
}

// NewInvalidTransformationError creates an InvalidTransformationError listing
// the supported transformation names.
func NewInvalidTransformationError(name string, supported []string) error {
	return &InvalidTransformationError{Name: name, Supported: supported}
}

// ValidationError reports a constraint violation on a boundary input, e.g. an
// intent without required capabilities.
type ValidationError struct {
	Input string
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Input, e.Cause)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a ValidationError naming the rejected input.
func NewValidationError(input string, cause error) error {
	return &ValidationError{Input: input, Cause: cause}
}
