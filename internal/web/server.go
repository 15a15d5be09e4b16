// Package web provides the HTTP server exposing scans as async jobs
// over a small REST API.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/buemura/warden/internal/web/jobs"
)

// Server is the HTTP server for the Warden scan API.
type Server struct {
	router  chi.Router
	addr    string
	manager *jobs.Manager
}

// NewServer builds a new Server with middleware and routes configured.
func NewServer(addr string) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		addr:    addr,
		manager: jobs.NewManager(),
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.registerRoutes()

	return s
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	return http.ListenAndServe(s.addr, s.router)
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
