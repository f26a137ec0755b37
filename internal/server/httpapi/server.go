// Package httpapi exposes the dailyDo HTTP API: registration, token-based
// login, and owner-scoped todo CRUD. Every authenticated route goes through
// the bearer middleware, which resolves the token into a user record before
// any handler runs.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dailydo/internal/logging"
	"github.com/dmitrijs2005/dailydo/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	address string
	users   *services.UserService
	todos   *services.TodoService
	logger  logging.Logger
}

func NewServer(a string, l logging.Logger, us *services.UserService, ts *services.TodoService) (*Server, error) {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		todos:   ts,
	}, nil
}

// Routes assembles the router. Split out from Run so tests can mount the
// handler on httptest.Server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.Root)

	r.Route("/user", func(r chi.Router) {
		r.Get("/", s.UserRoot)
		r.Post("/register", s.RegisterUser)
		r.Group(func(r chi.Router) {
			r.Use(s.Authenticator)
			r.Get("/me", s.Me)
		})
	})

	r.Post("/token", s.Login)

	r.Route("/todos", func(r chi.Router) {
		r.Use(s.Authenticator)
		r.Post("/", s.CreateTodo)
		r.Get("/", s.ListTodos)
		r.Get("/{id}", s.GetTodo)
		r.Put("/{id}", s.UpdateTodo)
		r.Delete("/{id}", s.DeleteTodo)

		r.Post("/{id}/attachment", s.RequestAttachmentUpload)
		r.Post("/{id}/attachment/uploaded", s.MarkAttachmentUploaded)
		r.Get("/{id}/attachment", s.GetAttachmentDownloadURL)
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
