package view

import (
	"errors"
	"net/http"

	"github.com/framp/framp-backend/internal/consts"
)

// StatusFromError maps domain sentinel errors to HTTP status codes.
// Anything unrecognised is an internal error.
func StatusFromError(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, consts.ErrValidation),
		errors.Is(err, consts.ErrInvalidState),
		errors.Is(err, consts.ErrAlreadyDisbursed):
		return http.StatusBadRequest
	case errors.Is(err, consts.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, consts.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, consts.ErrNotFound),
		errors.Is(err, consts.ErrWaitlistNotFound):
		return http.StatusNotFound
	case errors.Is(err, consts.ErrWaitlistExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
