package server

import (
	"encoding/json"
	stderrors "errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stangrad/wayfind/pkg/errors"
	"github.com/stangrad/wayfind/pkg/graph"
	"github.com/stangrad/wayfind/pkg/layout"
	"github.com/stangrad/wayfind/pkg/nav"
	"github.com/stangrad/wayfind/pkg/observability"
)

type mapResponse struct {
	Meta      *graph.Meta             `json:"meta,omitempty"`
	Nodes     []graph.Node            `json:"nodes"`
	Edges     []graph.Edge            `json:"edges"`
	Positions map[string]layout.Point `json:"positions"`
	Width     float64                 `json:"width"`
	Height    float64                 `json:"height"`
}

type poseRequest struct {
	NodeID  string   `json:"node_id"`
	Heading *float64 `json:"heading,omitempty"`
}

type poseResponse struct {
	ActiveID    string                  `json:"active_id"`
	Heading     float64                 `json:"heading"`
	Orientation nav.OrientationState    `json:"orientation"`
	Buckets     map[string][]nav.Choice `json:"buckets"`
}

type advanceRequest struct {
	Direction string `json:"direction"`
}

type advanceResponse struct {
	OK     bool        `json:"ok"`
	Choice *nav.Choice `json:"choice,omitempty"`
}

type routeResponse struct {
	Path []string `json:"path"`
}

type stepResponse struct {
	OK     bool   `json:"ok"`
	NodeID string `json:"node_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, mapResponse{
		Meta:      s.result.Document.Meta,
		Nodes:     s.result.Document.Nodes,
		Edges:     s.result.Model.Edges(),
		Positions: s.result.Layout.Positions,
		Width:     s.result.Layout.Width,
		Height:    s.result.Layout.Height,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := s.createSession()
	s.logger.Info("session created", "session", id)
	s.writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.dropSession(id) {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session not found"), map[string]any{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePose(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.session(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session not found"), nil)
		return
	}

	var req poseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, err, "invalid request body"), nil)
		return
	}
	if req.NodeID == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidRequest, "node_id is required"), nil)
		return
	}

	// An omitted heading resolves to the node's default view downstream.
	heading := math.NaN()
	if req.Heading != nil {
		heading = *req.Heading
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := entry.sess.SetPose(req.NodeID, heading); err != nil {
		if stderrors.Is(err, nav.ErrUnknownNode) {
			s.writeError(w, errors.New(errors.ErrCodeNodeNotFound, "node not found"), map[string]any{"node_id": req.NodeID})
			return
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "pose update failed"), nil)
		return
	}
	observability.Nav().OnPose(r.Context(), req.NodeID, entry.sess.Heading())

	s.writeJSON(w, http.StatusOK, poseResponse{
		ActiveID:    entry.sess.ActiveID(),
		Heading:     entry.sess.Heading(),
		Orientation: entry.sess.Orientation(),
		Buckets:     bucketMap(entry.sess.Buckets()),
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.session(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session not found"), nil)
		return
	}

	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidRequest, err, "invalid request body"), nil)
		return
	}
	dir, err := nav.ParseDirection(req.Direction)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidDirection, err, "invalid direction"), map[string]any{"direction": req.Direction})
		return
	}

	entry.mu.Lock()
	choice, ok := entry.sess.Advance(dir)
	entry.mu.Unlock()

	if !ok {
		s.writeJSON(w, http.StatusOK, advanceResponse{OK: false})
		return
	}
	observability.Nav().OnAdvance(r.Context(), dir.String(), choice.NeighborID)
	s.writeJSON(w, http.StatusOK, advanceResponse{OK: true, Choice: &choice})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.session(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session not found"), nil)
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidRequest, "from and to are required"), nil)
		return
	}

	entry.mu.Lock()
	path := entry.sess.Route(from, to)
	entry.mu.Unlock()

	if path == nil {
		path = []string{}
	}
	observability.Nav().OnRoute(r.Context(), from, to, len(path))
	s.writeJSON(w, http.StatusOK, routeResponse{Path: path})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.session(chi.URLParam(r, "id"))
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeSessionNotFound, "session not found"), nil)
		return
	}

	var dir int
	switch r.URL.Query().Get("dir") {
	case "next":
		dir = 1
	case "prev":
		dir = -1
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidDirection, "dir must be next or prev"), nil)
		return
	}

	entry.mu.Lock()
	current := entry.sess.ActiveID()
	if from := r.URL.Query().Get("from"); from != "" {
		current = from
	}
	if current == "" {
		entry.mu.Unlock()
		s.writeError(w, errors.New(errors.ErrCodeInvalidRequest, "no active node; set a pose or pass from"), nil)
		return
	}
	next, ok := entry.sess.Step(current, dir)
	entry.mu.Unlock()

	s.writeJSON(w, http.StatusOK, stepResponse{OK: ok, NodeID: next})
}

// bucketMap flattens the four quadrants into a JSON-friendly shape.
func bucketMap(b *nav.Buckets) map[string][]nav.Choice {
	out := make(map[string][]nav.Choice, 4)
	for d := nav.DirectionForward; d <= nav.DirectionLeft; d++ {
		choices := b.Get(d)
		if choices == nil {
			choices = []nav.Choice{}
		}
		out[d.String()] = choices
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// writeError maps a coded error onto an HTTP status and the wire error shape.
func (s *Server) writeError(w http.ResponseWriter, err error, details map[string]any) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, httpStatus(code), map[string]errorBody{"error": {
		Code:    string(code),
		Message: errors.UserMessage(err),
		Details: details,
	}})
}

func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound, errors.ErrCodeNodeNotFound,
		errors.ErrCodeFileNotFound, errors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidDocument, errors.ErrCodeEmptyGraph,
		errors.ErrCodeInvalidDirection, errors.ErrCodeInvalidHeading,
		errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
