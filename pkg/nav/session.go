package nav

import (
	"errors"
	"math"

	"github.com/stangrad/wayfind/pkg/graph"
	"github.com/stangrad/wayfind/pkg/layout"
)

// ErrUnknownNode is returned by [Session.SetPose] when the active node id is
// not part of the loaded graph.
var ErrUnknownNode = errors.New("unknown node")

// OrientationState is the one-shot heading calibration for a loaded graph.
// Calibrated=false implies YawOffset==0. It is reset whenever a new session
// is constructed and mutated at most once automatically.
type OrientationState struct {
	YawOffset  float64 `json:"yaw_offset"`
	Calibrated bool    `json:"calibrated"`
}

// Session owns all per-load navigation state: the graph model, its layout,
// the orientation calibration, and the current pose with its direction
// buckets. Construct a new Session for every graph (re)load and swap it in
// atomically; never mutate a session from multiple goroutines without
// external serialization.
type Session struct {
	model       *graph.Model
	layout      layout.Layout
	orientation OrientationState

	activeID string
	heading  float64
	buckets  *Buckets
}

// NewSession creates a session for a freshly laid-out graph with orientation
// reset to the uncalibrated state.
func NewSession(m *graph.Model, l layout.Layout) *Session {
	return &Session{model: m, layout: l}
}

// Model returns the session's graph model.
func (s *Session) Model() *graph.Model { return s.model }

// Layout returns the session's layout.
func (s *Session) Layout() layout.Layout { return s.layout }

// Orientation returns the current calibration state.
func (s *Session) Orientation() OrientationState { return s.orientation }

// ActiveID returns the active node id set by the last SetPose, or "".
func (s *Session) ActiveID() string { return s.activeID }

// Heading returns the resolved heading of the last SetPose.
func (s *Session) Heading() float64 { return s.heading }

// WorldBearing returns the graph-relative bearing from one node to another
// using the layout's positions, or false if either id is unknown.
func (s *Session) WorldBearing(fromID, toID string) (float64, bool) {
	from, okF := s.layout.Positions[fromID]
	to, okT := s.layout.Positions[toID]
	if !okF || !okT {
		return 0, false
	}
	return worldBearingXY(from.X, from.Y, to.X, to.Y), true
}

// ViewerBearing returns the world bearing adjusted by the calibration
// offset, which is what the panorama renderer's heading convention expects.
func (s *Session) ViewerBearing(fromID, toID string) (float64, bool) {
	wb, ok := s.WorldBearing(fromID, toID)
	if !ok {
		return 0, false
	}
	return NormalizeBearing(wb + s.orientation.YawOffset), true
}

// Calibrate reconciles an externally reported viewing angle with the graph's
// own geometry. It is a guarded one-shot: a no-op when already calibrated,
// when the active node has no known neighbors, or when the heading is not a
// finite angle. Returns whether calibration fired.
//
// The anchor neighbor is the one reachable via the smallest sequence value
// strictly greater than the active node's own (the "next" stop); without
// such a neighbor the one whose world bearing is angularly closest to the
// reported heading is used. The resulting yaw offset persists unchanged
// until the next graph load.
func (s *Session) Calibrate(activeID string, reportedHeading float64) bool {
	if s.orientation.Calibrated || !isFiniteAngle(reportedHeading) {
		return false
	}
	neighbors := s.model.Neighbors(activeID)
	if len(neighbors) == 0 {
		return false
	}

	anchor := s.sequenceAnchor(activeID, neighbors)
	if anchor == "" {
		anchor = s.closestAnchor(activeID, neighbors, reportedHeading)
	}
	if anchor == "" {
		return false
	}

	wb, ok := s.WorldBearing(activeID, anchor)
	if !ok {
		return false
	}
	s.orientation = OrientationState{
		YawOffset:  NormalizeBearing(reportedHeading - wb),
		Calibrated: true,
	}
	return true
}

// Recalibrate clears the calibration guard and calibrates again. This is the
// explicit on-demand path; nothing in the engine calls it implicitly.
func (s *Session) Recalibrate(activeID string, reportedHeading float64) bool {
	s.orientation = OrientationState{}
	return s.Calibrate(activeID, reportedHeading)
}

// sequenceAnchor picks the neighbor holding the smallest sequence strictly
// greater than the active node's own, or "" when the preference does not
// apply (active node unsequenced, or no such neighbor).
func (s *Session) sequenceAnchor(activeID string, neighbors []string) string {
	active, ok := s.model.Node(activeID)
	if !ok || !active.HasSequence() {
		return ""
	}
	own := *active.Sequence
	best := ""
	bestSeq := math.Inf(1)
	for _, id := range neighbors {
		n, _ := s.model.Node(id)
		if n.HasSequence() && *n.Sequence > own && *n.Sequence < bestSeq {
			best, bestSeq = id, *n.Sequence
		}
	}
	return best
}

// closestAnchor picks the neighbor whose world bearing is angularly closest
// to the reported heading.
func (s *Session) closestAnchor(activeID string, neighbors []string, heading float64) string {
	best := ""
	bestAbs := math.Inf(1)
	for _, id := range neighbors {
		wb, ok := s.WorldBearing(activeID, id)
		if !ok {
			continue
		}
		if d := math.Abs(SignedDelta(heading - wb)); d < bestAbs {
			best, bestAbs = id, d
		}
	}
	return best
}

// SetPose records a navigation event: the active node and the reported
// heading. It runs the guarded calibration, then rebuilds the direction
// buckets (resetting their cursors). A non-finite heading falls back to the
// node's default view yaw, then to 0.
func (s *Session) SetPose(activeID string, reportedHeading float64) error {
	active, ok := s.model.Node(activeID)
	if !ok {
		return ErrUnknownNode
	}

	heading := reportedHeading
	if !isFiniteAngle(heading) {
		if active.DefaultView != nil {
			heading = active.DefaultView.Yaw
		} else {
			heading = 0
		}
	}
	heading = NormalizeBearing(heading)

	s.Calibrate(activeID, heading)

	var choices []Choice
	for _, id := range s.model.Neighbors(activeID) {
		vy, ok := s.ViewerBearing(activeID, id)
		if !ok {
			continue
		}
		choices = append(choices, Choice{
			NeighborID: id,
			Delta:      SignedDelta(vy - heading),
			ViewerYaw:  vy,
		})
	}

	s.activeID = activeID
	s.heading = heading
	s.buckets = newBuckets(choices)
	return nil
}

// Buckets returns the direction buckets of the last SetPose, or nil before
// any pose was set.
func (s *Session) Buckets() *Buckets { return s.buckets }

// Advance cycles through the given quadrant's bucket (round-robin). A no-op
// before the first SetPose or on an empty bucket.
func (s *Session) Advance(d Direction) (Choice, bool) {
	if s.buckets == nil {
		return Choice{}, false
	}
	return s.buckets.Advance(d)
}

// Route plans the shortest hop-count path between two nodes.
func (s *Session) Route(startID, endID string) []string {
	return Route(s.model, startID, endID)
}

// Step performs linear stepping from the current node along sequence
// ordinals (+1 next, -1 previous).
func (s *Session) Step(currentID string, dir int) (string, bool) {
	return Step(s.model, currentID, dir)
}
