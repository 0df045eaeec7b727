package storage

import (
	"errors"
	"fmt"
)

var (
	ErrCredentials   = errors.New("credentials not available")
	ErrService       = errors.New("object store rejected the request")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ServiceError is a rejection reported by the object store itself
// (missing bucket, access denied, throttling, ...)
type ServiceError struct {
	Code       string // e.g. NoSuchBucket
	Message    string // service-provided message
	StatusCode int    // HTTP status, 0 when unknown
	Err        error
}

func (e *ServiceError) Error() string {
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Code != "":
		return e.Code
	case e.Err != nil:
		return e.Err.Error()
	default:
		return fmt.Sprintf("service error (status %d)", e.StatusCode)
	}
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrService) match any ServiceError
func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// IsCredentials returns true if the error means credentials were missing or rejected
func IsCredentials(err error) bool {
	return errors.Is(err, ErrCredentials)
}

// IsService returns true if the object store rejected the request
func IsService(err error) bool {
	return errors.Is(err, ErrService)
}

// WrapError adds context to an error
func WrapError(operation string, err error) error {
	return fmt.Errorf("%s: %w", operation, err)
}
