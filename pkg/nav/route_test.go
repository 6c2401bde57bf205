package nav

import (
	"testing"

	"github.com/stangrad/wayfind/pkg/graph"
)

func mustModel(t *testing.T, doc *graph.Document) *graph.Model {
	t.Helper()
	m, err := graph.NewModel(doc)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	return m
}

func seq(v float64) *float64 { return &v }

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRoute(t *testing.T) {
	// Directed chain a→b→c→d plus a disconnected island.
	m := mustModel(t, &graph.Document{Nodes: []graph.Node{
		{ID: "a", Connections: []string{"b"}},
		{ID: "b", Connections: []string{"c"}},
		{ID: "c", Connections: []string{"d"}},
		{ID: "d"},
		{ID: "island"},
	}})

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"Chain", "a", "d", []string{"a", "b", "c", "d"}},
		{"Identity", "a", "a", []string{"a"}},
		{"SingleHop", "b", "c", []string{"b", "c"}},
		{"AgainstDirection", "d", "a", nil},
		{"Disconnected", "a", "island", nil},
		{"UnknownStart", "nowhere", "a", nil},
		{"UnknownEnd", "a", "nowhere", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Route(m, tt.start, tt.end)
			if !equalPath(got, tt.want) {
				t.Errorf("Route(%s,%s) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestRouteShortestAndDeterministic(t *testing.T) {
	// Two ways from a to d: a→b→d (short, b listed first) and a→c→e→d.
	m := mustModel(t, &graph.Document{Nodes: []graph.Node{
		{ID: "a", Connections: []string{"b", "c"}},
		{ID: "b", Connections: []string{"d"}},
		{ID: "c", Connections: []string{"e"}},
		{ID: "e", Connections: []string{"d"}},
		{ID: "d"},
	}})

	want := []string{"a", "b", "d"}
	for i := 0; i < 5; i++ {
		if got := Route(m, "a", "d"); !equalPath(got, want) {
			t.Fatalf("run %d: Route = %v, want %v", i, got, want)
		}
	}
}

func TestRouteSkipsUnknownReferences(t *testing.T) {
	m := mustModel(t, &graph.Document{Nodes: []graph.Node{
		{ID: "a", Connections: []string{"ghost", "b"}},
		{ID: "b", Connections: []string{"phantom"}},
	}})

	if got := Route(m, "a", "b"); !equalPath(got, []string{"a", "b"}) {
		t.Errorf("Route = %v, want [a b]", got)
	}
	// Traversal through a node whose only reference is unknown terminates.
	if got := Route(m, "b", "a"); got != nil {
		t.Errorf("Route = %v, want nil", got)
	}
}

func TestStep(t *testing.T) {
	// Sequences 1,2,3, fully connected pairwise.
	m := mustModel(t, &graph.Document{Nodes: []graph.Node{
		{ID: "s1", Sequence: seq(1), Connections: []string{"s2", "s3"}},
		{ID: "s2", Sequence: seq(2), Connections: []string{"s1", "s3"}},
		{ID: "s3", Sequence: seq(3), Connections: []string{"s1", "s2"}},
	}})

	tests := []struct {
		name    string
		current string
		dir     int
		want    string
		wantOK  bool
	}{
		{"NextFromMiddle", "s2", 1, "s3", true},
		{"PrevFromMiddle", "s2", -1, "s1", true},
		{"NextFromStart", "s1", 1, "s2", true},
		{"NextFromEnd", "s3", 1, "", false},
		{"PrevFromStart", "s1", -1, "", false},
		{"UnknownNode", "zz", 1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Step(m, tt.current, tt.dir)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Step(%s,%+d) = (%q,%v), want (%q,%v)", tt.current, tt.dir, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestStepIgnoresUnsequencedNeighbors(t *testing.T) {
	m := mustModel(t, &graph.Document{Nodes: []graph.Node{
		{ID: "s1", Sequence: seq(1), Connections: []string{"free", "s5"}},
		{ID: "free", Connections: []string{"s1"}},
		{ID: "s5", Sequence: seq(5), Connections: []string{"s1"}},
	}})

	if got, ok := Step(m, "s1", 1); !ok || got != "s5" {
		t.Errorf("Step = (%q,%v), want (s5,true)", got, ok)
	}
	// A current node without a sequence is a dead end.
	if _, ok := Step(m, "free", 1); ok {
		t.Error("Step from unsequenced node should fail")
	}
}
