package nav

import (
	"errors"
	"math"
	"sort"
)

// ErrInvalidDirection is returned by [ParseDirection] for unknown names.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is one of the four navigation quadrants relative to the current
// heading.
type Direction int

// The four quadrants. A neighbor's signed angular delta δ to the reported
// heading classifies it: |δ|≤45° forward, |δ|≥135° back, 45°<δ<135° right,
// -135°<δ<-45° left.
const (
	DirectionForward Direction = iota
	DirectionRight
	DirectionBack
	DirectionLeft
)

var directionNames = [...]string{"forward", "right", "back", "left"}

// String returns the lowercase quadrant name.
func (d Direction) String() string {
	if d < DirectionForward || d > DirectionLeft {
		return "unknown"
	}
	return directionNames[d]
}

// ParseDirection maps a quadrant name to its Direction.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if s == name {
			return Direction(i), nil
		}
	}
	return 0, ErrInvalidDirection
}

// Choice is one neighbor candidate inside a bucket.
type Choice struct {
	NeighborID string  `json:"neighbor_id"`
	Delta      float64 `json:"delta"`      // signed angular delta to the reported heading
	ViewerYaw  float64 `json:"viewer_yaw"` // offset-adjusted bearing toward the neighbor
}

// Buckets partitions a node's known neighbors into the four quadrants, each
// sorted ascending by |delta| and paired with a round-robin cursor. Buckets
// are rebuilt on every navigation event (active node or heading change),
// which resets the cursors.
type Buckets struct {
	choices [4][]Choice
	cursors [4]int
}

// classify assigns a signed delta to its quadrant.
func classify(delta float64) Direction {
	abs := math.Abs(delta)
	switch {
	case abs <= 45:
		return DirectionForward
	case abs >= 135:
		return DirectionBack
	case delta > 0:
		return DirectionRight
	default:
		return DirectionLeft
	}
}

// newBuckets classifies every choice and sorts each quadrant closest-first.
func newBuckets(choices []Choice) *Buckets {
	b := &Buckets{}
	for _, c := range choices {
		d := classify(c.Delta)
		b.choices[d] = append(b.choices[d], c)
	}
	for d := range b.choices {
		sort.SliceStable(b.choices[d], func(i, j int) bool {
			return math.Abs(b.choices[d][i].Delta) < math.Abs(b.choices[d][j].Delta)
		})
	}
	return b
}

// Get returns the quadrant's choices, closest-first. The slice is shared;
// treat it as read-only.
func (b *Buckets) Get(d Direction) []Choice {
	if b == nil || d < DirectionForward || d > DirectionLeft {
		return nil
	}
	return b.choices[d]
}

// Len returns the number of choices in the quadrant.
func (b *Buckets) Len(d Direction) int { return len(b.Get(d)) }

// Advance returns the choice at the quadrant's round-robin cursor and moves
// the cursor forward modulo the bucket size. An empty bucket is a no-op and
// returns false.
func (b *Buckets) Advance(d Direction) (Choice, bool) {
	if b == nil || d < DirectionForward || d > DirectionLeft {
		return Choice{}, false
	}
	bucket := b.choices[d]
	if len(bucket) == 0 {
		return Choice{}, false
	}
	c := bucket[b.cursors[d]]
	b.cursors[d] = (b.cursors[d] + 1) % len(bucket)
	return c, true
}
