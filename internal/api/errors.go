package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fleetwise/driver-service/internal/domain"
	"github.com/fleetwise/driver-service/internal/service"
	"github.com/fleetwise/driver-service/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error kind. This is the single dispatch table from error kind
// to status code; handlers never branch on status per endpoint.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// The notification channel could not be reached after a durable write
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusBadGateway

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidSex):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-safe message for the error.
// Service errors carry their own message; everything else collapses to a
// generic message so internal details never leak to clients.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Error()
	}

	return "An unexpected error occurred"
}

// SanitizeValidationError converts a go-playground validation error into a
// user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'DriverRequest.Email' Error:Field validation
	// for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "number":
		return "must contain only digits"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt", "gte", "lte":
		return "out of range"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
