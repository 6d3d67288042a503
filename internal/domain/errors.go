package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface keeps handler error mapping extensible.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a child record (or other resource) was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Is hooks so errors.Is() matches the sentinels below.
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
	ErrCorrupted    = errors.New("corrupted record")
	ErrRemoteCall   = errors.New("remote call failed")
)

// CorruptedRecordError reports a stored value that failed to parse as JSON.
// Read paths surface it instead of deleting the key; the purge maintenance
// operation is the only place corrupted keys are removed.
type CorruptedRecordError struct {
	Key    string
	Reason string
}

func (e *CorruptedRecordError) Error() string {
	return "corrupted record at " + e.Key + ": " + e.Reason
}

func (e *CorruptedRecordError) StatusCode() int { return http.StatusUnprocessableEntity }

// Is allows errors.Is() to match against ErrCorrupted
func (e *CorruptedRecordError) Is(target error) bool {
	return target == ErrCorrupted
}

// StorageError wraps a failure from the key-value layer, distinguishing
// reads from writes so callers can report them separately.
type StorageError struct {
	Op  string // "get", "set", "remove", "keys", "multiget"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return "storage " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) StatusCode() int { return http.StatusInternalServerError }

// Is maps read-like ops to ErrStorageRead and the rest to ErrStorageWrite.
func (e *StorageError) Is(target error) bool {
	switch e.Op {
	case "get", "keys", "multiget":
		return target == ErrStorageRead
	default:
		return target == ErrStorageWrite
	}
}

// RemoteCallError reports a failed suggestion-endpoint call. Callers degrade
// to the static fallback tables rather than surfacing this to the client.
type RemoteCallError struct {
	Reason string
	Err    error
}

func (e *RemoteCallError) Error() string {
	if e.Err != nil {
		return "remote call failed: " + e.Reason + ": " + e.Err.Error()
	}
	return "remote call failed: " + e.Reason
}

func (e *RemoteCallError) Unwrap() error { return e.Err }

func (e *RemoteCallError) StatusCode() int { return http.StatusBadGateway }

func (e *RemoteCallError) Is(target error) bool {
	return target == ErrRemoteCall
}
