// Package diag classifies the conditions raised while building a generation context.
//
// Only SchemaViolation is fatal. Every other kind is recorded as a Warning and
// the pipeline continues with a best-effort tree.
package diag

import (
	"errors"
	"fmt"
	"log/slog"
)

// Kind classifies a diagnostic.
type Kind string

const (
	// MissingSource reports an absent or empty solver export path.
	MissingSource Kind = "missing_source"
	// MalformedSource reports a solver export that exists but cannot be parsed
	// or has an unexpected shape.
	MalformedSource Kind = "malformed_source"
	// SchemaViolation reports a descriptor field that is unknown or cannot be
	// coerced to its declared type. It aborts the generation request.
	SchemaViolation Kind = "schema_violation"
	// UnknownOverrideKey reports an override path absent from the destination tree.
	UnknownOverrideKey Kind = "unknown_override_key"
	// CoercionFailure names an override value that matched no typed form and
	// was kept as a string. It completes the taxonomy only: that fallback is
	// silent, so no component emits it.
	CoercionFailure Kind = "coercion_failure"
)

// Warning is a non-fatal diagnostic.
type Warning struct {
	// Kind classifies the warning.
	Kind Kind
	// Path is the dotted key path or file path the warning refers to.
	Path string
	// Message is a human-readable description.
	Message string
}

// String renders the warning for logs and test failures.
func (w Warning) String() string {
	if w.Path == "" {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", w.Kind, w.Path, w.Message)
}

// Log writes each warning to logger at warn level.
func Log(logger *slog.Logger, warnings []Warning) {
	if logger == nil {
		return
	}
	for _, w := range warnings {
		logger.Warn(w.Message, "kind", string(w.Kind), "path", w.Path)
	}
}

// Error is a classified, fatal diagnostic.
type Error struct {
	// Kind classifies the error.
	Kind Kind
	// Path names the offending field, struct path, or file.
	Path string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s at %s", e.Kind, e.Path)
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Violation builds a SchemaViolation error.
func Violation(path string, err error) *Error {
	return &Error{Kind: SchemaViolation, Path: path, Err: err}
}

// IsSchemaViolation reports whether err wraps a SchemaViolation.
func IsSchemaViolation(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind == SchemaViolation
	}
	return false
}
