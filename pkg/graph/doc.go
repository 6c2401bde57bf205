// Package graph provides the panorama walk-graph document model.
//
// This package defines the canonical wire format for Wayfind's map data and
// the in-memory Model built from it. The document is a sparse, partially
// annotated adjacency graph of capture locations: each node lists the
// neighbors a visitor can walk to, and may carry an authored floor-plan
// position, a linear sequence ordinal, and a default viewing angle.
//
// # Core Types
//
//   - [Document]: the JSON/BSON document as authored or generated
//   - [Node]: one capture location with its adjacency and annotations
//   - [Model]: indexed view with O(1) lookup and the derived edge set
//   - [Edge]: undirected, deduplicated edge used for layout and drawing
//
// # Adjacency Semantics
//
// A node's connections list is ordered and not guaranteed symmetric: a node
// may list a neighbor that does not list it back. The Model preserves these
// directed semantics (routing follows them as authored) and derives an
// undirected edge whenever either endpoint lists the other. Connections that
// reference ids absent from the node set are kept in the raw adjacency but
// excluded from the edge set and from known-neighbor queries; [Model.Lint]
// reports both cases as non-fatal findings.
//
// # Serialization
//
// Documents use a simple JSON format:
//
//	{
//	  "meta": {"floorplan": {"image": "floor2.svg"}},
//	  "nodes": [
//	    {"id": "hall-01", "type": "hallway", "connections": ["hall-02"],
//	     "position": {"x": 0.31, "y": 0.54}, "sequence": 1}
//	  ]
//	}
//
// Common operations:
//
//	doc, _ := graph.ReadDocumentFile("panorama-map.json")
//	m, err := graph.NewModel(doc)
//
// All Model methods are safe for concurrent reads.
package graph
