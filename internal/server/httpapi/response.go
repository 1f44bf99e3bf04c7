package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/eventboard/internal/common"
)

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps a service or token error to its HTTP status and the
// message shown to the caller. Unknown errors become a bare 500.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "user with this email already exists"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "user email not found"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "user credentials incorrect"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusForbidden, common.ErrTokenExpired.Error()
	case errors.Is(err, common.ErrTokenMissing):
		return http.StatusUnauthorized, common.ErrTokenMissing.Error()
	case errors.Is(err, common.ErrTokenInvalidSignature):
		return http.StatusUnauthorized, common.ErrTokenInvalidSignature.Error()
	case errors.Is(err, common.ErrTokenMalformed):
		return http.StatusUnauthorized, common.ErrTokenMalformed.Error()
	default:
		return http.StatusInternalServerError, "server error"
	}
}
