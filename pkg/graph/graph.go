package graph

import (
	"errors"
	"sort"
)

// ErrEmptyGraph is returned by [NewModel] when the document contains zero
// nodes. Nothing downstream (layout, calibration, routing) may run on an
// empty graph, so this is reported to the caller immediately.
var ErrEmptyGraph = errors.New("document contains no nodes")

// Model is the indexed, read-only view of a Document.
//
// It owns node lookup, the document-ordered node list, and the derived
// undirected edge set used by the layout engine. The raw per-node adjacency
// stays available for directed traversal. Build a new Model on every graph
// (re)load; a Model is never partially updated.
type Model struct {
	doc   *Document
	nodes map[string]*Node
	order []*Node
	edges []Edge
}

// NewModel builds a Model from a parsed document.
// Returns ErrEmptyGraph if the document has zero nodes. Duplicate node ids
// keep the first occurrence; later duplicates are ignored by lookup but
// reported by Lint.
func NewModel(doc *Document) (*Model, error) {
	if doc == nil || len(doc.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	m := &Model{
		doc:   doc,
		nodes: make(map[string]*Node, len(doc.Nodes)),
		order: make([]*Node, 0, len(doc.Nodes)),
	}
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if _, exists := m.nodes[n.ID]; exists {
			continue
		}
		m.nodes[n.ID] = n
		m.order = append(m.order, n)
	}
	m.edges = m.deriveEdges()
	return m, nil
}

// Node returns the node with the given ID and true, or nil and false.
func (m *Model) Node(id string) (*Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Nodes returns the node list in document order.
// The returned slice is shared; treat it as read-only.
func (m *Model) Nodes() []*Node { return m.order }

// Root returns the first node in document order. Layout rotation is
// canonicalized relative to this node.
func (m *Model) Root() *Node { return m.order[0] }

// NodeCount returns the number of distinct nodes.
func (m *Model) NodeCount() int { return len(m.order) }

// Edges returns the derived undirected edge set.
// Each edge appears once with A < B lexicographically; an edge exists
// whenever either endpoint's connections list the other. Order is
// deterministic (first mention in document order).
func (m *Model) Edges() []Edge { return m.edges }

// Connections returns the raw authored adjacency for a node, including
// references to ids that do not exist. Returns nil for unknown nodes.
func (m *Model) Connections(id string) []string {
	n, ok := m.nodes[id]
	if !ok {
		return nil
	}
	return n.Connections
}

// Neighbors returns the node's connections filtered to ids present in the
// node set, preserving order and dropping duplicates. This is the adjacency
// view used by calibration and direction bucketing.
func (m *Model) Neighbors(id string) []string {
	n, ok := m.nodes[id]
	if !ok {
		return nil
	}
	var out []string
	seen := make(map[string]bool, len(n.Connections))
	for _, c := range n.Connections {
		if c == id || seen[c] {
			continue
		}
		if _, known := m.nodes[c]; !known {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// deriveEdges builds the deduplicated undirected edge set from whichever
// direction of each connection is present, pruning unknown references.
func (m *Model) deriveEdges() []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	for _, n := range m.order {
		for _, c := range n.Connections {
			if c == n.ID {
				continue
			}
			if _, known := m.nodes[c]; !known {
				continue
			}
			e := Edge{A: n.ID, B: c}
			if e.B < e.A {
				e.A, e.B = e.B, e.A
			}
			if seen[e] {
				continue
			}
			seen[e] = true
			edges = append(edges, e)
		}
	}
	return edges
}

// Finding severities reported by Lint.
const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Finding is one non-fatal diagnostic about the document's adjacency.
type Finding struct {
	Severity string `json:"severity"`
	NodeID   string `json:"node_id"`
	Ref      string `json:"ref,omitempty"`
	Message  string `json:"message"`
}

// Lint reports authoring issues that the engine tolerates at runtime:
// connections referencing unknown ids, asymmetric adjacency pairs, and
// duplicate node ids. Findings are sorted by node id for stable output.
// None of these are errors; routing and layout prune or preserve them as
// documented on Model.
func (m *Model) Lint() []Finding {
	var findings []Finding

	seenIDs := make(map[string]int)
	for i := range m.doc.Nodes {
		id := m.doc.Nodes[i].ID
		seenIDs[id]++
		if seenIDs[id] == 2 {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				NodeID:   id,
				Message:  "duplicate node id; only the first occurrence is used",
			})
		}
	}

	for _, n := range m.order {
		for _, c := range n.Connections {
			target, known := m.nodes[c]
			if !known {
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					NodeID:   n.ID,
					Ref:      c,
					Message:  "connection references an unknown node id",
				})
				continue
			}
			if !contains(target.Connections, n.ID) {
				findings = append(findings, Finding{
					Severity: SeverityInfo,
					NodeID:   n.ID,
					Ref:      c,
					Message:  "one-way connection; neighbor does not list this node back",
				})
			}
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].NodeID != findings[j].NodeID {
			return findings[i].NodeID < findings[j].NodeID
		}
		return findings[i].Ref < findings[j].Ref
	})
	return findings
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
