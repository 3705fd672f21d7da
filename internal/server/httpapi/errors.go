package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Client-facing messages.
const (
	msgDuplicateEmail      = "Email already in use"
	msgInvalidCredentials  = "Invalid credentials"
	msgMissingRefreshToken = "No refresh token found"
	msgInvalidRefreshToken = "Invalid refresh token"
	msgUnauthenticated     = "Invalid or expired token"
	msgBadRequestBody      = "Invalid request body"
	msgInternal            = "internal error"
)

// httpError maps a service or guard error to a status code and the message
// sent in the {"error": ...} body. Unknown errors become 500 and their text
// is not exposed.
func httpError(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return http.StatusBadRequest, msgDuplicateEmail
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, errBadRequestBody):
		return http.StatusBadRequest, msgBadRequestBody
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, common.ErrMissingRefreshToken):
		return http.StatusUnauthorized, msgMissingRefreshToken
	case errors.Is(err, common.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, msgInvalidRefreshToken
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, msgUnauthenticated
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
