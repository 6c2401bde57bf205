package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stangrad/wayfind/pkg/graph"
)

func writeRouteMap(t *testing.T) string {
	t.Helper()
	doc := &graph.Document{Nodes: []graph.Node{
		{ID: "lobby", Title: "Lobby", Connections: []string{"hall"}},
		{ID: "hall", Connections: []string{"lobby"}},
	}}
	path := filepath.Join(t.TempDir(), "map.json")
	if err := graph.WriteDocumentFile(doc, path); err != nil {
		t.Fatalf("write map: %v", err)
	}
	return path
}

func runRoute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	cmd := c.routeCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRouteCommandFindsPath(t *testing.T) {
	path := writeRouteMap(t)
	if err := runRoute(t, path, "--from", "lobby", "--to", "hall"); err != nil {
		t.Fatalf("route lobby->hall: %v", err)
	}
}

func TestRouteCommandUnknownIdentity(t *testing.T) {
	// An identity route short-circuits to a one-stop path even for ids that
	// are not in the graph; displaying it must not dereference a missing node.
	path := writeRouteMap(t)
	if err := runRoute(t, path, "--from", "ghost", "--to", "ghost"); err != nil {
		t.Fatalf("route ghost->ghost: %v", err)
	}
}

func TestRouteCommandUnreachable(t *testing.T) {
	path := writeRouteMap(t)
	if err := runRoute(t, path, "--from", "lobby", "--to", "ghost"); err != nil {
		t.Fatalf("unreachable route should not error: %v", err)
	}
}
