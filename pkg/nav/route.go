package nav

import "github.com/stangrad/wayfind/pkg/graph"

// Route computes the shortest hop-count path from startID to endID.
//
// The search is breadth-first over each node's own connections list,
// directionally and in authored order, so the result is exactly reproducible
// for a fixed adjacency. Connections referencing unknown ids are skipped.
// An identical start and end short-circuits to the single-element path. An
// unreachable end (or unknown start) yields nil, which callers treat as
// "unreachable", not as an error.
func Route(m *graph.Model, startID, endID string) []string {
	if startID == endID {
		return []string{startID}
	}
	if _, ok := m.Node(startID); !ok {
		return nil
	}

	visited := map[string]bool{startID: true}
	parent := make(map[string]string)
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range m.Connections(current) {
			if visited[next] {
				continue
			}
			if _, known := m.Node(next); !known {
				continue
			}
			visited[next] = true
			parent[next] = current
			if next == endID {
				return rebuildPath(parent, startID, endID)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func rebuildPath(parent map[string]string, startID, endID string) []string {
	var reversed []string
	for id := endID; ; id = parent[id] {
		reversed = append(reversed, id)
		if id == startID {
			break
		}
	}
	path := make([]string, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}
	return path
}

// Step performs linear stepping along sequence ordinals.
//
// For dir > 0 it picks the neighbor with the smallest sequence strictly
// greater than the current node's own; for dir < 0 the largest strictly
// less. Neighbors without a sequence are excluded, and a current node
// without one is a dead end. Returns false when no such neighbor exists.
func Step(m *graph.Model, currentID string, dir int) (string, bool) {
	current, ok := m.Node(currentID)
	if !ok || !current.HasSequence() || dir == 0 {
		return "", false
	}

	own := *current.Sequence
	bestID := ""
	var bestSeq float64
	for _, id := range m.Neighbors(currentID) {
		n, _ := m.Node(id)
		if !n.HasSequence() {
			continue
		}
		s := *n.Sequence
		switch {
		case dir > 0 && s > own && (bestID == "" || s < bestSeq):
			bestID, bestSeq = id, s
		case dir < 0 && s < own && (bestID == "" || s > bestSeq):
			bestID, bestSeq = id, s
		}
	}
	return bestID, bestID != ""
}
