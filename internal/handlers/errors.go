package handlers

import (
	"log"
	"net/http"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/tourism-api/internal/apperr"
)

var badRequestOnce sync.Once

// reportValidationAsBadRequest makes huma answer malformed input with 400
// instead of 422, the status clients of this API expect.
func reportValidationAsBadRequest() {
	badRequestOnce.Do(func() {
		newError := huma.NewError
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			if status == http.StatusUnprocessableEntity {
				status = http.StatusBadRequest
			}
			return newError(status, msg, errs...)
		}
	})
}

// humaError maps a service error onto its HTTP status.
func humaError(err error) error {
	msg := apperr.MessageOf(err)
	switch apperr.KindOf(err) {
	case apperr.Validation:
		return huma.Error400BadRequest(msg)
	case apperr.Unauthenticated:
		return huma.Error401Unauthorized(msg)
	case apperr.Forbidden:
		return huma.Error403Forbidden(msg)
	case apperr.NotFound:
		return huma.Error404NotFound(msg)
	}
	log.Printf("Request failed: %v", err)
	return huma.Error500InternalServerError(msg)
}
