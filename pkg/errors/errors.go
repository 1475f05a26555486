// Package errors provides custom error types for the venuemap system.
// Per-entry conditions (missing key, no template, conflict, unresolved patch)
// are modeled as values that callers accumulate into reports, while file-level
// failures (source read, store load, destination write) abort a run.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are the standard library functions, re-exported so callers that
// import this package need not also import the standard errors package.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the venuemap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingKey indicates an entry without a venue or a year
	ErrMissingKey = errors.New("missing venue or year")

	// ErrNoTemplate indicates that no template exists for an entry's venue and year
	ErrNoTemplate = errors.New("no matching template")

	// ErrConflict indicates that an entry value disagrees with its template
	ErrConflict = errors.New("field conflict")

	// ErrUnresolvedPatch indicates a computed patch that found no header to attach to
	ErrUnresolvedPatch = errors.New("unresolved patch")

	// ErrLocked indicates that another process holds the template store
	ErrLocked = errors.New("store locked")

	// ErrFatal marks errors that abort the whole run
	ErrFatal = errors.New("fatal")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// MissingKeyError reports an entry that lacks a venue or a year.
// The entry is skipped; the run continues.
type MissingKeyError struct {
	EntryID string
	Venue   string
	Year    string
}

// Error implements the error interface
func (e *MissingKeyError) Error() string {
	var missing []string
	if strings.TrimSpace(e.Venue) == "" {
		missing = append(missing, "venue")
	}
	if strings.TrimSpace(e.Year) == "" {
		missing = append(missing, "year")
	}
	return fmt.Sprintf("entry %s: missing %s", e.EntryID, strings.Join(missing, " and "))
}

// Is implements errors.Is support
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// NewMissingKeyError creates a new MissingKeyError
func NewMissingKeyError(entryID, venue, year string) *MissingKeyError {
	return &MissingKeyError{EntryID: entryID, Venue: venue, Year: year}
}

// NoTemplateMatchError reports an entry whose normalized venue and year
// have no template in the store.
type NoTemplateMatchError struct {
	EntryID string
	Venue   string
	Year    string
}

// Error implements the error interface
func (e *NoTemplateMatchError) Error() string {
	return fmt.Sprintf("entry %s: no template for venue %q year %q", e.EntryID, e.Venue, e.Year)
}

// Is implements errors.Is support
func (e *NoTemplateMatchError) Is(target error) bool {
	return target == ErrNoTemplate
}

// NewNoTemplateMatchError creates a new NoTemplateMatchError
func NewNoTemplateMatchError(entryID, venue, year string) *NoTemplateMatchError {
	return &NoTemplateMatchError{EntryID: entryID, Venue: venue, Year: year}
}

// ConflictError reports a field whose entry value and template value differ
// after normalization.
type ConflictError struct {
	EntryID  string
	Field    string
	Existing string
	Template string
	// Applied is true when the entry value overwrote the template value.
	Applied bool
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("entry %s: field %s differs (existing=%q, template=%q)", e.EntryID, e.Field, e.Existing, e.Template)
}

// Is implements errors.Is support
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a new ConflictError
func NewConflictError(entryID, field, existing, template string) *ConflictError {
	return &ConflictError{EntryID: entryID, Field: field, Existing: existing, Template: template}
}

// UnresolvedPatchError lists patches that never met a matching entry header
// while rewriting the source text.
type UnresolvedPatchError struct {
	IDs []string
}

// Error implements the error interface
func (e *UnresolvedPatchError) Error() string {
	return fmt.Sprintf("%d patch(es) not applied, no matching entry header for: %s", len(e.IDs), strings.Join(e.IDs, ", "))
}

// Is implements errors.Is support
func (e *UnresolvedPatchError) Is(target error) bool {
	return target == ErrUnresolvedPatch
}

// NewUnresolvedPatchError creates a new UnresolvedPatchError
func NewUnresolvedPatchError(ids []string) *UnresolvedPatchError {
	return &UnresolvedPatchError{IDs: ids}
}

// SourceReadError represents a bibliography source that could not be read or parsed.
type SourceReadError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *SourceReadError) Error() string {
	return fmt.Sprintf("reading source %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceReadError) Is(target error) bool {
	return target == ErrFatal
}

// NewSourceReadError creates a new SourceReadError
func NewSourceReadError(path string, err error) *SourceReadError {
	return &SourceReadError{Path: path, Err: err}
}

// StoreLoadError represents a template store that could not be loaded.
type StoreLoadError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *StoreLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("loading template store: %v", e.Err)
	}
	return fmt.Sprintf("loading template store %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StoreLoadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *StoreLoadError) Is(target error) bool {
	return target == ErrFatal
}

// NewStoreLoadError creates a new StoreLoadError
func NewStoreLoadError(path string, err error) *StoreLoadError {
	return &StoreLoadError{Path: path, Err: err}
}

// DestinationWriteError represents a failed overwrite of the template store.
// Backup names the copy of the previous content, empty when none was taken.
type DestinationWriteError struct {
	Path   string
	Backup string
	Err    error
}

// Error implements the error interface
func (e *DestinationWriteError) Error() string {
	if e.Backup != "" {
		return fmt.Sprintf("writing %s (previous content kept in %s): %v", e.Path, e.Backup, e.Err)
	}
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DestinationWriteError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DestinationWriteError) Is(target error) bool {
	return target == ErrFatal
}

// NewDestinationWriteError creates a new DestinationWriteError
func NewDestinationWriteError(path, backup string, err error) *DestinationWriteError {
	return &DestinationWriteError{Path: path, Backup: backup, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsMissingKey checks if an error reports an entry without venue or year
func IsMissingKey(err error) bool {
	return errors.Is(err, ErrMissingKey)
}

// IsNoTemplate checks if an error reports an unmatched venue and year
func IsNoTemplate(err error) bool {
	return errors.Is(err, ErrNoTemplate)
}

// IsConflict checks if an error reports a field conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnresolvedPatch checks if an error reports patches that were not applied
func IsUnresolvedPatch(err error) bool {
	return errors.Is(err, ErrUnresolvedPatch)
}

// IsFatal checks if an error must abort the run
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "bibtex", "yaml"
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d:%d: %s", e.Format, e.File, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d: %s", e.Format, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "sync", "rename", "lock"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "load", "create", "update"
	Resource  string // "store", "template", "config"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
