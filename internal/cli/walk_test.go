package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stangrad/wayfind/pkg/graph"
	"github.com/stangrad/wayfind/pkg/layout"
	"github.com/stangrad/wayfind/pkg/nav"
)

// crossWalkModel builds a walk model on a hand-placed cross: east, north,
// west, and south neighbors around a center node.
func crossWalkModel(t *testing.T) WalkModel {
	t.Helper()
	doc := &graph.Document{Nodes: []graph.Node{
		{ID: "c", Title: "Center", Connections: []string{"e", "n", "w", "s"}},
		{ID: "e", Connections: []string{"c"}},
		{ID: "n", Connections: []string{"c"}},
		{ID: "w", Connections: []string{"c"}},
		{ID: "s", Connections: []string{"c"}},
	}}
	m, err := graph.NewModel(doc)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	l := layout.Layout{
		Positions: map[string]layout.Point{
			"c": {X: 50, Y: 50},
			"e": {X: 60, Y: 50},
			"n": {X: 50, Y: 40},
			"w": {X: 40, Y: 50},
			"s": {X: 50, Y: 60},
		},
		Width:  100,
		Height: 100,
	}
	model, err := NewWalkModel(nav.NewSession(m, l), "c")
	if err != nil {
		t.Fatalf("NewWalkModel: %v", err)
	}
	return model
}

func TestNewWalkModelUnknownStart(t *testing.T) {
	doc := &graph.Document{Nodes: []graph.Node{{ID: "only"}}}
	m, err := graph.NewModel(doc)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	l := layout.Layout{Positions: map[string]layout.Point{"only": {X: 1, Y: 1}}}
	if _, err := NewWalkModel(nav.NewSession(m, l), "missing"); err == nil {
		t.Error("unknown start node should fail")
	}
}

func TestWalkModelQuit(t *testing.T) {
	m := crossWalkModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != (tea.QuitMsg{}) {
		t.Errorf("cmd() = %#v, want tea.QuitMsg", msg)
	}
}

func TestWalkModelMoveForward(t *testing.T) {
	m := crossWalkModel(t)

	// Start pose faces heading 0 (east); forward leads to e.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	wm := updated.(WalkModel)
	if got := wm.Session.ActiveID(); got != "e" {
		t.Errorf("active after forward = %q, want e", got)
	}
	if !strings.Contains(wm.Status, "forward") {
		t.Errorf("status = %q, want forward move", wm.Status)
	}
}

func TestWalkModelDeadEndKeepsPosition(t *testing.T) {
	m := crossWalkModel(t)

	// Walk east, then try forward again: e has no neighbor ahead.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	wm := updated.(WalkModel)
	updated, _ = wm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}})
	wm = updated.(WalkModel)

	if got := wm.Session.ActiveID(); got != "e" {
		t.Errorf("active after dead-end move = %q, want e", got)
	}
	if !strings.Contains(wm.Status, "nothing") {
		t.Errorf("status = %q, want dead-end notice", wm.Status)
	}
}

func TestWalkModelStepWithoutSequences(t *testing.T) {
	m := crossWalkModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	wm := updated.(WalkModel)
	if got := wm.Session.ActiveID(); got != "c" {
		t.Errorf("active after step on unsequenced map = %q, want c", got)
	}
	if !strings.Contains(wm.Status, "no next stop") {
		t.Errorf("status = %q, want no next stop", wm.Status)
	}
}

func TestWalkModelView(t *testing.T) {
	m := crossWalkModel(t)
	view := m.View()

	for _, want := range []string{"Center", "forward", "right", "back", "left", "heading"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
