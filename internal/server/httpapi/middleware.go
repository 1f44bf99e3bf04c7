package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/eventboard/internal/common"
	"github.com/dmitrijs2005/eventboard/internal/logging"
	"github.com/dmitrijs2005/eventboard/internal/server/auth"
)

// TokenVerifier checks a bearer token; see auth.TokenCodec.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Authenticate guards protected routes. It requires
// "Authorization: Bearer <token>", verifies the token and stores the claims
// in the request context. Any failure ends the request with 401, or 403 for
// an expired token, and next is not called.
func Authenticate(tokens TokenVerifier, logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err == nil {
				var claims *auth.Claims
				claims, err = tokens.Verify(token)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
			}

			status, msg := statusFor(err)
			logger.Info(r.Context(), "request rejected",
				"path", r.URL.Path,
				"status", status,
				"reason", err.Error(),
				"request_id", middleware.GetReqID(r.Context()),
			)
			writeError(w, status, msg)
		})
	}
}

// bearerToken extracts the token from the Authorization header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if header == "" {
		return "", common.ErrTokenMissing
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", common.ErrTokenMissing
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", common.ErrTokenMissing
	}
	return token, nil
}

// requestLogger logs one line per request after it completes.
func requestLogger(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
