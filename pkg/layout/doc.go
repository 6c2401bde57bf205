// Package layout computes 2D map positions for a walk graph.
//
// The engine is an anchored Fruchterman-Reingold embedding: every node has a
// target anchor (its authored floor-plan position, or a synthesized circular
// placement when none was authored) and the annealed force simulation blends
// pairwise repulsion, edge attraction, and a restoring pull toward the
// anchor. The result is canonicalized by rotation and normalized into a
// padded bounding box, so layouts of the same graph shape are comparable
// across reloads.
//
// Initial jitter makes exact coordinates non-reproducible unless the random
// seed is fixed; assert structural properties rather than literal positions.
//
//	l := layout.Compute(model, layout.Options{Seed: 42})
//	p := l.Positions["hall-01"]
package layout
