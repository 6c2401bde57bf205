// Package server exposes the navigation engine over HTTP. One server hosts
// one loaded map; clients create sessions against it and drive navigation
// through pose, advance, route, and step calls.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/stangrad/wayfind/pkg/nav"
	"github.com/stangrad/wayfind/pkg/pipeline"
)

// Server hosts one loaded map and its navigation sessions.
type Server struct {
	logger *log.Logger
	result *pipeline.Result

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// sessionEntry serializes access to one session. Sessions are single-walker
// state machines; the per-entry mutex keeps concurrent requests on the same
// id from interleaving bucket rebuilds.
type sessionEntry struct {
	mu        sync.Mutex
	sess      *nav.Session
	createdAt time.Time
}

// New creates a server over an executed pipeline result.
func New(result *pipeline.Result, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		logger:   logger,
		result:   result,
		sessions: make(map[string]*sessionEntry),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/map", s.handleMap)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Post("/pose", s.handlePose)
			r.Post("/advance", s.handleAdvance)
			r.Get("/route", s.handleRoute)
			r.Get("/step", s.handleStep)
			r.Delete("/", s.handleDeleteSession)
		})
	})
	return r
}

// createSession registers a fresh session and returns its id.
func (s *Server) createSession() string {
	id := uuid.NewString()
	entry := &sessionEntry{
		sess:      nav.NewSession(s.result.Model, s.result.Layout),
		createdAt: time.Now(),
	}
	s.mu.Lock()
	s.sessions[id] = entry
	s.mu.Unlock()
	return id
}

// session looks up a session entry by id.
func (s *Server) session(id string) (*sessionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	return entry, ok
}

// dropSession removes a session. Returns whether it existed.
func (s *Server) dropSession(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}
