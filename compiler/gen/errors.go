// Package gen implements the per-file code generation core: it drives
// the sub-emitters of one schema file and produces one Swift source
// artifact, or reports why it could not.
package gen

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidIdentifier indicates a malformed configured type prefix.
	ErrInvalidIdentifier = errors.New("swiftpb: invalid identifier")
	// ErrDeclarationFailed indicates a sub-emitter declaration failure.
	ErrDeclarationFailed = errors.New("swiftpb: declaration failed")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("swiftpb: missing configuration")
)

// InvalidIdentifierError reports a configured type-name prefix that is
// not a legal bare identifier.
type InvalidIdentifierError struct {
	File  string // schema file the prefix was configured in
	Ident string // the offending prefix
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("swiftpb: %s: invalid type prefix %q: must start with a letter or underscore and contain only letters, digits and underscores", e.File, e.Ident)
}

// Is reports whether the target matches the sentinel error for InvalidIdentifierError.
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// NewInvalidIdentifierError creates a new InvalidIdentifierError.
func NewInvalidIdentifierError(file, ident string) *InvalidIdentifierError {
	return &InvalidIdentifierError{File: file, Ident: ident}
}

// DeclarationError reports a failure in a sub-emitter's declaration
// phase. The orchestrator propagates the first one verbatim and aborts
// the file.
type DeclarationError struct {
	File    string // schema file being generated
	Symbol  string // declaration that failed, if known
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DeclarationError) Error() string {
	msg := "swiftpb: declaration error"
	if e.File != "" {
		msg += " in " + e.File
	}
	if e.Symbol != "" {
		msg += " for " + e.Symbol
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *DeclarationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for DeclarationError.
func (e *DeclarationError) Is(target error) bool {
	return target == ErrDeclarationFailed
}

// NewDeclarationError creates a new DeclarationError.
func NewDeclarationError(file, symbol, message string, cause error) *DeclarationError {
	return &DeclarationError{File: file, Symbol: symbol, Message: message, Cause: cause}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("swiftpb: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("swiftpb: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// IsInvalidIdentifierError reports whether the error is an InvalidIdentifierError.
func IsInvalidIdentifierError(err error) bool {
	var identErr *InvalidIdentifierError
	return errors.As(err, &identErr)
}

// IsDeclarationError reports whether the error is a DeclarationError.
func IsDeclarationError(err error) bool {
	var declErr *DeclarationError
	return errors.As(err, &declErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}
