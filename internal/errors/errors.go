// Package errors provides standardized error types for the certup CLI tool.
//
// The errors package defines domain-specific error types that enable
// structured error handling and consistent error messages throughout
// the application.
//
// # Error Types
//
// CertupError is the primary error type, containing:
//   - Code: Categorizes the error (VALIDATION, COMPOSE, etc.)
//   - Message: Human-readable error description
//   - Domain: The domain name involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
// Common error scenarios have pre-defined sentinel errors:
//
//	errors.ErrDomainRequired  // DOMAIN not set
//	errors.ErrEmailRequired   // LETSENCRYPT_EMAIL not set
//	errors.ErrComposeNotFound // docker compose not installed
//
// # Usage
//
// Creating domain-specific errors:
//
//	// Validation error
//	return errors.Validation("domain cannot be empty")
//
//	// Wrapping an underlying error
//	return errors.Wrap(errors.ErrCodeCertbot, "issuance failed", err)
//
// # Error Checking
//
// Use errors.Is for sentinel error comparison:
//
//	if errors.Is(err, errors.ErrComposeNotFound) {
//	    // Handle missing compose case
//	}
//
// Use errors.As for type assertion:
//
//	var cerr *errors.CertupError
//	if errors.As(err, &cerr) {
//	    fmt.Printf("Error code: %s, Domain: %s\n", cerr.Code, cerr.Domain)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeValidation ErrorCode = "VALIDATION" // Input validation failed
	ErrCodeConfig     ErrorCode = "CONFIG"     // Configuration error
	ErrCodeCompose    ErrorCode = "COMPOSE"    // docker compose invocation error
	ErrCodeCertbot    ErrorCode = "CERTBOT"    // Certificate client error
	ErrCodeProxy      ErrorCode = "PROXY"      // Reverse proxy (nginx) error
	ErrCodeNotify     ErrorCode = "NOTIFY"     // Lead delivery error
	ErrCodeInternal   ErrorCode = "INTERNAL"   // Internal/unexpected error
)

// CertupError represents a structured error with context about the operation.
type CertupError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *CertupError) Error() string {
	if e.Domain != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Domain, e.Message, e.Err)
	}
	if e.Domain != "" {
		return fmt.Sprintf("%s: %s", e.Domain, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *CertupError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *CertupError) Is(target error) bool {
	t, ok := target.(*CertupError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrDomainRequired indicates the DOMAIN variable is not set.
	ErrDomainRequired = &CertupError{Code: ErrCodeConfig, Message: "DOMAIN is not set"}

	// ErrEmailRequired indicates the LETSENCRYPT_EMAIL variable is not set.
	ErrEmailRequired = &CertupError{Code: ErrCodeConfig, Message: "LETSENCRYPT_EMAIL is not set"}

	// ErrInvalidDomain indicates the domain name is not valid.
	ErrInvalidDomain = &CertupError{Code: ErrCodeValidation, Message: "invalid domain"}

	// ErrInvalidEmail indicates the contact email is not valid.
	ErrInvalidEmail = &CertupError{Code: ErrCodeValidation, Message: "invalid email"}

	// ErrComposeNotFound indicates no docker compose binary is available.
	ErrComposeNotFound = &CertupError{Code: ErrCodeCompose, Message: "docker compose not installed"}

	// ErrComposeFileMissing indicates the compose file does not exist.
	ErrComposeFileMissing = &CertupError{Code: ErrCodeConfig, Message: "compose file not found"}

	// ErrConfigInvalid indicates the configuration is invalid or corrupt.
	ErrConfigInvalid = &CertupError{Code: ErrCodeConfig, Message: "invalid configuration"}
)

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &CertupError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &CertupError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapDomain creates an error with domain context and underlying error.
func WrapDomain(code ErrorCode, domain, msg string, err error) error {
	return &CertupError{
		Code:    code,
		Message: msg,
		Domain:  domain,
		Err:     err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As

// New creates a plain error. Re-export of errors.New for convenience.
var New = errors.New
