// Package nav implements first-person navigation over a laid-out walk graph.
//
// A [Session] owns everything scoped to one loaded graph: the model, its
// layout, the one-shot heading calibration state, and the current direction
// buckets. Reloading a graph means constructing a new Session and swapping it
// in whole; no consumer ever observes a half-updated session.
//
// The package also exposes the stateless planners: [Route] (breadth-first
// shortest hop count over the directed adjacency) and [Step] (linear stepping
// along sequence ordinals).
//
// # Bearings
//
// Map space has Y growing downward, so the compass-like world bearing from
// one node to another is atan2(-Δy, Δx) in degrees, normalized to [0,360)
// with 0° pointing east. Calibration reconciles this with the externally
// reported viewing angle once per load: the first navigation event with a
// usable heading fixes a yaw offset, and every viewer-relative bearing
// afterwards is world bearing plus that offset. The offset is deliberately
// never recomputed when the active node changes (stability over
// plausibility).
//
// Sessions are not safe for concurrent use; hosts serialize access per
// session.
package nav
