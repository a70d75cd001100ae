package svcerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Category groups service errors by how a client should react to them.
type Category string

const (
	CategoryInvalidArgument  Category = "invalid_argument"
	CategoryResourceConflict Category = "resource_conflict"
	CategoryNotFound         Category = "not_found"
	CategoryInternal         Category = "internal"
)

var categoryStatus = map[Category]int{
	CategoryInvalidArgument:  http.StatusBadRequest,
	CategoryResourceConflict: http.StatusConflict,
	CategoryNotFound:         http.StatusNotFound,
	CategoryInternal:         http.StatusInternalServerError,
}

// Status returns the HTTP status code answered for the category.
func (c Category) Status() int {
	if status, ok := categoryStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"

	internalMessage = "internal server error"
)

// ServiceError is an error a service returns to its callers. Message is safe to show to clients,
// Cause is not.
type ServiceError struct {
	Category       Category
	Code           string // stable per service, e.g. RPT_1000
	Message        string
	Cause          error
	HttpStatusCode int
}

func newServiceError(category Category, code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       category,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: category.Status(),
	}
}

func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return newServiceError(CategoryInvalidArgument, code, message, cause)
}

func NewResourceConflictError(code, message string, cause error) *ServiceError {
	return newServiceError(CategoryResourceConflict, code, message, cause)
}

func NewNotFoundError(code, message string, cause error) *ServiceError {
	return newServiceError(CategoryNotFound, code, message, cause)
}

// NewInternalError hides cause behind a generic message.
func NewInternalError(code string, cause error) *ServiceError {
	return newServiceError(CategoryInternal, code, internalMessage, cause)
}

// NewInternalErrorUndefined wraps an error that reached the transport without being mapped.
func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

// NewInternalErrorPanic wraps a recovered panic.
func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == CategoryInternal
}

// As returns the first ServiceError in err's chain.
func As(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// HasCode reports whether err's chain holds a ServiceError with code.
func HasCode(err error, code string) bool {
	svcErr, ok := As(err)
	return ok && svcErr.Code == code
}
