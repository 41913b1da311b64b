package http

import (
	"errors"
	"net/http"

	"orderservice/internal/pkg/errs"
)

const (
	msgMissingFields   = "Missing required fields"
	msgInvalidRequest  = "Invalid request"
	msgOrderNotFound   = "Order not found"
	msgCannotCancel    = "Cannot cancel order in current status"
	msgInternalFailure = "Internal server error"
)

// statusOf maps a use case error onto an HTTP status and a client-facing message.
// Anything outside the error taxonomy is reported as an internal failure without
// leaking details.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, msgOrderNotFound
	case errors.Is(err, errs.ErrStatusTransitionIsNotAllowed):
		return http.StatusBadRequest, msgCannotCancel
	case errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest, msgMissingFields
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, msgInvalidRequest + ": " + err.Error()
	default:
		return http.StatusInternalServerError, msgInternalFailure
	}
}
