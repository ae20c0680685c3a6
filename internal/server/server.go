// Package server exposes the arcade over HTTP: question content for
// the lesson editor, per-user progress, result ingestion and the
// filtered chat proxy.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vovakirdan/grammar-arcade/internal/game"
	"github.com/vovakirdan/grammar-arcade/internal/quiz"
)

// Store is the persistence surface the server reads and writes.
// Satisfied by *storage.Store.
type Store interface {
	game.ProgressStore
	IsCompleted(ctx context.Context, userID, mode string) (bool, error)
}

// Options configures the server.
type Options struct {
	Source         quiz.Source  // Question provider; built-in fallback is applied on top
	Store          Store        // Progress persistence; nil disables those endpoints
	Chat           http.Handler // Chat proxy; nil disables /api/chat
	AllowedOrigins []string     // CORS origins; empty means "*"
}

// Server is the HTTP API.
type Server struct {
	router    chi.Router
	source    quiz.Source
	store     Store
	finalizer *game.Finalizer
}

// New builds the router with the standard middleware stack.
func New(opts Options) *Server {
	s := &Server{
		source: opts.Source,
		store:  opts.Store,
	}
	if opts.Store != nil {
		s.finalizer = game.NewFinalizer(opts.Store)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Route("/api", func(ar chi.Router) {
		ar.Get("/questions/{mode}", s.handleQuestions)
		if opts.Chat != nil {
			ar.Method(http.MethodPost, "/chat", opts.Chat)
		}
		if s.store != nil {
			ar.Get("/progress/{userID}/{mode}", s.handleProgress)
			ar.Post("/results", s.handleResults)
		}
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
