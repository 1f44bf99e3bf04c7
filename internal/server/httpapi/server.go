// Package httpapi exposes the authentication endpoints over HTTP and guards
// the protected /api namespace with bearer tokens.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/eventboard/internal/dbx"
	"github.com/dmitrijs2005/eventboard/internal/logging"
)

type HTTPServer struct {
	address         string
	users           UserService
	tokens          TokenVerifier
	logger          logging.Logger
	db              dbx.Pinger
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
	protected       []func(r chi.Router)
}

// Option customizes an HTTPServer.
type Option func(*HTTPServer)

// WithDB enables the database check in /healthz.
func WithDB(db dbx.Pinger) Option {
	return func(s *HTTPServer) { s.db = db }
}

// WithTimeouts sets the per-request and graceful shutdown budgets.
func WithTimeouts(request, shutdown time.Duration) Option {
	return func(s *HTTPServer) {
		s.requestTimeout = request
		s.shutdownTimeout = shutdown
	}
}

func NewHTTPServer(a string, l logging.Logger, us UserService, tokens TokenVerifier, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		address:         a,
		users:           us,
		tokens:          tokens,
		logger:          l.With("module", "http_server"),
		requestTimeout:  15 * time.Second,
		shutdownTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Protected registers routes under /api that require a valid token, e.g.
// the event and tag handlers. Call before Handler or Run.
func (s *HTTPServer) Protected(fn func(r chi.Router)) {
	s.protected = append(s.protected, fn)
}

// Handler builds the router.
//
//	GET  /healthz
//	POST /api/signup
//	POST /api/login
//	GET  /api/me        (token required)
//	*    /api/...       (token required, including unknown paths)
func (s *HTTPServer) Handler() http.Handler {
	authenticate := Authenticate(s.tokens, s.logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.requestTimeout))

	r.NotFound(s.notFound)
	r.Get("/healthz", s.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", s.signup)
		r.Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", s.me)
			for _, fn := range s.protected {
				fn(r)
			}
		})

		// an unknown path under /api must not reveal itself before auth
		r.NotFound(authenticate(http.HandlerFunc(s.notFound)).ServeHTTP)
	})

	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
