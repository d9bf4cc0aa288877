package client

import (
	"errors"
	"fmt"
)

// ErrorCode classifies the failure a backend reports.
type ErrorCode int

const (
	// ErrAuthenticationFailed indicates the backend rejected the supplied
	// credentials.
	ErrAuthenticationFailed ErrorCode = iota + 1

	// ErrBadAddress indicates the endpoint address could not be parsed or
	// resolved.
	ErrBadAddress

	// ErrConnection indicates the transport-level connection failed.
	ErrConnection

	// ErrTLS indicates TLS/SSH negotiation failed.
	ErrTLS

	// ErrCouldNotOpenFile indicates the file exists but could not be
	// opened.
	ErrCouldNotOpenFile

	// ErrDirectoryAlreadyExists indicates directory creation hit an
	// existing directory.
	ErrDirectoryAlreadyExists

	// ErrFileCreateDenied indicates the backend refused to create the
	// file.
	ErrFileCreateDenied

	// ErrIO indicates a generic I/O failure.
	ErrIO

	// ErrNoSuchFileOrDirectory indicates the path does not resolve.
	ErrNoSuchFileOrDirectory

	// ErrNotConnected indicates an operation was attempted before
	// Connect or after Disconnect.
	ErrNotConnected

	// ErrNotDirectory indicates a directory operation hit a non-directory.
	ErrNotDirectory

	// ErrIsDirectory indicates a file operation hit a directory.
	ErrIsDirectory

	// ErrDirectoryNotEmpty indicates RemoveDir hit a non-empty directory.
	ErrDirectoryNotEmpty

	// ErrPermissionDenied indicates the backend denied access.
	ErrPermissionDenied

	// ErrProtocol indicates the backend sent a malformed or unexpected
	// response.
	ErrProtocol

	// ErrStatFailed indicates metadata could not be retrieved for an
	// existing object.
	ErrStatFailed

	// ErrUnsupportedFeature indicates the backend does not implement the
	// requested operation.
	ErrUnsupportedFeature
)

// String returns a human-readable name for the error code.
func (e ErrorCode) String() string {
	switch e {
	case ErrAuthenticationFailed:
		return "AuthenticationFailed"
	case ErrBadAddress:
		return "BadAddress"
	case ErrConnection:
		return "ConnectionError"
	case ErrTLS:
		return "TLSError"
	case ErrCouldNotOpenFile:
		return "CouldNotOpenFile"
	case ErrDirectoryAlreadyExists:
		return "DirectoryAlreadyExists"
	case ErrFileCreateDenied:
		return "FileCreateDenied"
	case ErrIO:
		return "IOError"
	case ErrNoSuchFileOrDirectory:
		return "NoSuchFileOrDirectory"
	case ErrNotConnected:
		return "NotConnected"
	case ErrNotDirectory:
		return "NotDirectory"
	case ErrIsDirectory:
		return "IsDirectory"
	case ErrDirectoryNotEmpty:
		return "DirectoryNotEmpty"
	case ErrPermissionDenied:
		return "PermissionDenied"
	case ErrProtocol:
		return "ProtocolError"
	case ErrStatFailed:
		return "StatFailed"
	case ErrUnsupportedFeature:
		return "UnsupportedFeature"
	default:
		return fmt.Sprintf("Unknown(%d)", int(e))
	}
}

// RemoteError is the error type every backend reports. Code classifies the
// failure, Path names the object involved when there is one, and Err
// preserves the underlying protocol error for unwrapping.
type RemoteError struct {
	Code    ErrorCode
	Message string
	Path    string
	Err     error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg += fmt.Sprintf(" (path: %s)", e.Path)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *RemoteError) Unwrap() error { return e.Err }

// Is matches two RemoteErrors by code, so callers can write
// errors.Is(err, &RemoteError{Code: ErrNotConnected}).
func (e *RemoteError) Is(target error) bool {
	var re *RemoteError
	if !errors.As(target, &re) {
		return false
	}
	return e.Code == re.Code
}

// CodeOf extracts the ErrorCode from err, or 0 when err carries no
// RemoteError.
func CodeOf(err error) ErrorCode {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Code
	}
	return 0
}

// IsCode reports whether err carries a RemoteError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// Factory helpers. Backends use these so messages stay uniform across
// implementations.

// NewNotConnectedError creates a NotConnected error.
func NewNotConnectedError() *RemoteError {
	return &RemoteError{
		Code:    ErrNotConnected,
		Message: "client is not connected",
	}
}

// NewAlreadyConnectedError creates a Protocol error for a duplicate
// Connect call.
func NewAlreadyConnectedError() *RemoteError {
	return &RemoteError{
		Code:    ErrProtocol,
		Message: "client is already connected",
	}
}

// NewConnectionError creates a ConnectionError wrapping cause.
func NewConnectionError(cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrConnection,
		Message: "connection failed",
		Err:     cause,
	}
}

// NewAuthenticationFailedError creates an AuthenticationFailed error
// wrapping cause.
func NewAuthenticationFailedError(cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrAuthenticationFailed,
		Message: "authentication failed",
		Err:     cause,
	}
}

// NewBadAddressError creates a BadAddress error for addr.
func NewBadAddressError(addr string, cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrBadAddress,
		Message: fmt.Sprintf("bad address %q", addr),
		Err:     cause,
	}
}

// NewNoSuchFileError creates a NoSuchFileOrDirectory error for path.
func NewNoSuchFileError(path string, cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrNoSuchFileOrDirectory,
		Message: "no such file or directory",
		Path:    path,
		Err:     cause,
	}
}

// NewNotDirectoryError creates a NotDirectory error for path.
func NewNotDirectoryError(path string) *RemoteError {
	return &RemoteError{
		Code:    ErrNotDirectory,
		Message: "not a directory",
		Path:    path,
	}
}

// NewIsDirectoryError creates an IsDirectory error for path.
func NewIsDirectoryError(path string) *RemoteError {
	return &RemoteError{
		Code:    ErrIsDirectory,
		Message: "is a directory",
		Path:    path,
	}
}

// NewDirectoryNotEmptyError creates a DirectoryNotEmpty error for path.
func NewDirectoryNotEmptyError(path string) *RemoteError {
	return &RemoteError{
		Code:    ErrDirectoryNotEmpty,
		Message: "directory not empty",
		Path:    path,
	}
}

// NewDirectoryAlreadyExistsError creates a DirectoryAlreadyExists error
// for path.
func NewDirectoryAlreadyExistsError(path string) *RemoteError {
	return &RemoteError{
		Code:    ErrDirectoryAlreadyExists,
		Message: "directory already exists",
		Path:    path,
	}
}

// NewPermissionDeniedError creates a PermissionDenied error for path.
func NewPermissionDeniedError(path string, cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrPermissionDenied,
		Message: "permission denied",
		Path:    path,
		Err:     cause,
	}
}

// NewCouldNotOpenFileError creates a CouldNotOpenFile error for path.
func NewCouldNotOpenFileError(path string, cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrCouldNotOpenFile,
		Message: "could not open file",
		Path:    path,
		Err:     cause,
	}
}

// NewFileCreateDeniedError creates a FileCreateDenied error for path.
func NewFileCreateDeniedError(path string, cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrFileCreateDenied,
		Message: "file creation denied",
		Path:    path,
		Err:     cause,
	}
}

// NewStatFailedError creates a StatFailed error for path.
func NewStatFailedError(path string, cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrStatFailed,
		Message: "could not retrieve metadata",
		Path:    path,
		Err:     cause,
	}
}

// NewIOError creates a generic IOError for path.
func NewIOError(path string, cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrIO,
		Message: "i/o error",
		Path:    path,
		Err:     cause,
	}
}

// NewProtocolError creates a ProtocolError with the given message.
func NewProtocolError(message string, cause error) *RemoteError {
	return &RemoteError{
		Code:    ErrProtocol,
		Message: message,
		Err:     cause,
	}
}

// NewUnsupportedFeatureError creates an UnsupportedFeature error naming
// the operation.
func NewUnsupportedFeatureError(operation string) *RemoteError {
	return &RemoteError{
		Code:    ErrUnsupportedFeature,
		Message: fmt.Sprintf("operation %s is not supported by this backend", operation),
	}
}
