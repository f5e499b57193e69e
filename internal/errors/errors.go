// Package errors provides the structured error kinds shared by every
// vhostsync component.
//
// Every failure the core can report carries an ErrorCode so the CLI can
// decide how to present it (exit status, JSON "code" field, warning vs.
// error) without string matching.
//
// # Error Kinds
//
//	INVALID_ADDRESS       address text is not a canonical dotted quad
//	DUPLICATE_DOMAIN      the host table already maps the domain
//	NOT_FOUND             host entry, file or parent directory missing
//	ALREADY_EXISTS        site declaration exists, or a file occupies a directory path
//	UNSUPPORTED_PLATFORM  platform is not Linux-like or Windows-like
//	SERVER_NOT_INSTALLED  Apache installation directory is missing
//	RELATIVE_PATH         a configured or derived path is not absolute
//	PERMISSION_DENIED     the OS refused a read or write
//
// # Error Checking
//
// Use errors.Is against the sentinels; matching is by code only:
//
//	if errors.Is(err, errors.ErrDuplicateDomain) {
//	    // the host entry is already there
//	}
//
// Use CodeOf to extract the code from any error chain:
//
//	code := errors.CodeOf(err) // "" for foreign errors
package errors

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeInvalidAddress      ErrorCode = "INVALID_ADDRESS"
	ErrCodeDuplicateDomain     ErrorCode = "DUPLICATE_DOMAIN"
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists       ErrorCode = "ALREADY_EXISTS"
	ErrCodeUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"
	ErrCodeServerNotInstalled  ErrorCode = "SERVER_NOT_INSTALLED"
	ErrCodeRelativePath        ErrorCode = "RELATIVE_PATH"
	ErrCodePermission          ErrorCode = "PERMISSION_DENIED"
	ErrCodeValidation          ErrorCode = "VALIDATION"
	ErrCodeInternal            ErrorCode = "INTERNAL"
)

// SiteError represents a structured error with context about the operation.
type SiteError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Domain  string    // Domain name (if applicable)
	Path    string    // Filesystem path (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Domain != "" {
		msg = fmt.Sprintf("%s: %s", e.Domain, msg)
	}
	if e.Err != nil {
		if msg == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain traversal.
func (e *SiteError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *SiteError) Is(target error) bool {
	t, ok := target.(*SiteError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors, one per code. Use these with errors.Is().
var (
	ErrInvalidAddress      = &SiteError{Code: ErrCodeInvalidAddress, Message: "invalid address"}
	ErrDuplicateDomain     = &SiteError{Code: ErrCodeDuplicateDomain, Message: "domain already in host table"}
	ErrNotFound            = &SiteError{Code: ErrCodeNotFound, Message: "not found"}
	ErrAlreadyExists       = &SiteError{Code: ErrCodeAlreadyExists, Message: "already exists"}
	ErrUnsupportedPlatform = &SiteError{Code: ErrCodeUnsupportedPlatform, Message: "unsupported platform"}
	ErrServerNotInstalled  = &SiteError{Code: ErrCodeServerNotInstalled, Message: "apache is not installed"}
	ErrRelativePath        = &SiteError{Code: ErrCodeRelativePath, Message: "relative path not allowed"}
	ErrPermissionDenied    = &SiteError{Code: ErrCodePermission, Message: "permission denied, try running as Administrator/root"}
	ErrValidation          = &SiteError{Code: ErrCodeValidation, Message: "validation failed"}
)

// InvalidAddress creates an error for unparseable address text.
func InvalidAddress(text string) error {
	return &SiteError{
		Code:    ErrCodeInvalidAddress,
		Message: fmt.Sprintf("invalid address %q", text),
	}
}

// DuplicateDomain creates an error for a domain the host table already maps.
func DuplicateDomain(domain string) error {
	return &SiteError{
		Code:    ErrCodeDuplicateDomain,
		Message: "domain already in host table",
		Domain:  domain,
	}
}

// NotFound creates an error for a missing host entry or file.
func NotFound(domain, msg string) error {
	return &SiteError{
		Code:    ErrCodeNotFound,
		Message: msg,
		Domain:  domain,
	}
}

// AlreadyExists creates an error for a path that is already taken.
func AlreadyExists(domain, msg, path string) error {
	return &SiteError{
		Code:    ErrCodeAlreadyExists,
		Message: msg,
		Domain:  domain,
		Path:    path,
	}
}

// UnsupportedPlatform creates an error naming the rejected platform.
func UnsupportedPlatform(name string) error {
	return &SiteError{
		Code:    ErrCodeUnsupportedPlatform,
		Message: fmt.Sprintf("platform %s is not supported", name),
	}
}

// ServerNotInstalled creates an error for a missing Apache installation.
func ServerNotInstalled(dir string) error {
	return &SiteError{
		Code:    ErrCodeServerNotInstalled,
		Message: "apache is not installed",
		Path:    dir,
	}
}

// RelativePath creates an error for a path that must be absolute.
func RelativePath(name, path string) error {
	return &SiteError{
		Code:    ErrCodeRelativePath,
		Message: fmt.Sprintf("%s must be an absolute path", name),
		Path:    path,
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &SiteError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &SiteError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// FromFS classifies a filesystem error. Permission, missing and existing
// path errors get their own codes; anything else is INTERNAL.
func FromFS(err error, msg, path string) error {
	if err == nil {
		return nil
	}
	code := ErrCodeInternal
	switch {
	case errors.Is(err, fs.ErrPermission):
		code = ErrCodePermission
	case errors.Is(err, fs.ErrNotExist):
		code = ErrCodeNotFound
	case errors.Is(err, fs.ErrExist):
		code = ErrCodeAlreadyExists
	}
	return &SiteError{
		Code:    code,
		Message: msg,
		Path:    path,
		Err:     err,
	}
}

// CodeOf returns the code of the first SiteError in err's chain,
// or "" when there is none.
func CodeOf(err error) ErrorCode {
	var se *SiteError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
