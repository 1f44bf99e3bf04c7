package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/eventboard/internal/common"
	"github.com/dmitrijs2005/eventboard/internal/server/services"
)

const maxBodyBytes = 1 << 20

// UserService is the part of services.UserService the handlers use.
type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (string, error)
	Login(ctx context.Context, in services.LoginInput) (string, error)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: request body must be a JSON object", common.ErrorValidation)
	}
	return nil
}

// signup handles POST /api/signup.
func (s *HTTPServer) signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if err := decodeBody(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	token, err := s.users.Signup(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// login handles POST /api/login.
func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := decodeBody(w, r, &in); err != nil {
		s.fail(w, r, err)
		return
	}

	token, err := s.users.Login(r.Context(), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// me handles GET /api/me and echoes the caller's claims.
func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		// only reachable if the route was mounted outside Authenticate
		s.logger.Error(r.Context(), "claims missing behind auth middleware")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

// healthz handles GET /healthz.
func (s *HTTPServer) healthz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			s.logger.Error(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}
