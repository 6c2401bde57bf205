// Package export renders computed maps as Graphviz DOT and SVG for
// debugging and documentation. The walk UI draws its own map; this output is
// for inspecting what the layout solver produced without starting a server.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/stangrad/wayfind/pkg/graph"
	"github.com/stangrad/wayfind/pkg/layout"
)

// Options configures map export.
type Options struct {
	// Titles labels nodes with their display title instead of the raw id.
	Titles bool
}

// ToDOT converts a model and its layout to Graphviz DOT format. Positions
// are pinned so the neato engine reproduces the solver's geometry; the Y
// axis is flipped because Graphviz points up while map space points down.
// The resulting DOT string can be rendered with [RenderSVG] or external
// Graphviz tools.
func ToDOT(m *graph.Model, l layout.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	for _, n := range m.Nodes() {
		attrs := fmtAttrs(n, l, opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range m.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.A, e.B)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *graph.Node, l layout.Layout, opts Options) []string {
	label := n.ID
	if opts.Titles {
		label = n.DisplayTitle()
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch n.Type {
	case graph.TypeClassroom:
		attrs = append(attrs, "shape=box")
	case graph.TypeIntersection:
		attrs = append(attrs, "shape=diamond")
	default:
		attrs = append(attrs, "shape=ellipse")
	}

	if p, ok := l.Positions[n.ID]; ok {
		attrs = append(attrs, fmt.Sprintf("pos=\"%.3f,%.3f!\"", p.X, l.Height-p.Y))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
