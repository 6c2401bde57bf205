package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Node types produced by the ingest tooling. The type tag is free-form;
// these constants cover the labels the classifier emits today.
const (
	TypeHallway      = "hallway"
	TypeClassroom    = "classroom"
	TypeIntersection = "intersection"
	TypeLounge       = "lounge"
)

// Position is an authored map anchor in normalized floor-plan coordinates.
// Both axes are in [0,1]; y grows downward on the floor plan.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// DefaultView is the initial camera orientation for a node's panorama.
// It is consumed by the external renderer and serves as a fallback heading
// source for calibration.
type DefaultView struct {
	Pitch float64 `json:"pitch" bson:"pitch"`
	Yaw   float64 `json:"yaw" bson:"yaw"`
	HFov  float64 `json:"hfov" bson:"hfov"`
}

// Node is one capture location in the walk graph.
//
// Connections is the ordered raw adjacency as authored; it is not guaranteed
// symmetric and may reference ids that do not exist in the document. Optional
// fields keep their zero/nil value when absent - every consumer defines a
// fallback rather than faulting.
type Node struct {
	ID          string       `json:"id" bson:"id"`
	Title       string       `json:"title,omitempty" bson:"title,omitempty"`
	Type        string       `json:"type,omitempty" bson:"type,omitempty"`
	Image       string       `json:"image,omitempty" bson:"image,omitempty"`
	Connections []string     `json:"connections" bson:"connections"`
	Sequence    *float64     `json:"sequence,omitempty" bson:"sequence,omitempty"`
	Position    *Position    `json:"position,omitempty" bson:"position,omitempty"`
	DefaultView *DefaultView `json:"defaultView,omitempty" bson:"default_view,omitempty"`
	Features    []string     `json:"features,omitempty" bson:"features,omitempty"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Level       any          `json:"level,omitempty" bson:"level,omitempty"`
}

// DisplayTitle returns the title if set, otherwise the ID.
func (n *Node) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	return n.ID
}

// HasPosition reports whether the node carries an authored map anchor.
func (n *Node) HasPosition() bool { return n.Position != nil }

// HasSequence reports whether the node participates in linear stepping.
func (n *Node) HasSequence() bool { return n.Sequence != nil }

// FloorLevel labels one floor in a multi-level floor plan.
type FloorLevel struct {
	Floor any    `json:"floor" bson:"floor"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// Floorplan describes the background image the map is drawn over.
type Floorplan struct {
	Image  string       `json:"image,omitempty" bson:"image,omitempty"`
	Alt    string       `json:"alt,omitempty" bson:"alt,omitempty"`
	Width  float64      `json:"width,omitempty" bson:"width,omitempty"`
	Height float64      `json:"height,omitempty" bson:"height,omitempty"`
	Levels []FloorLevel `json:"levels,omitempty" bson:"levels,omitempty"`
}

// Meta carries document-level metadata.
type Meta struct {
	Title       string     `json:"title,omitempty" bson:"title,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Floorplan   *Floorplan `json:"floorplan,omitempty" bson:"floorplan,omitempty"`
}

// Document is the canonical serialization format for walk-graph data.
// It is consumed verbatim from the ingest tooling and stored as-is.
type Document struct {
	Meta  *Meta  `json:"meta,omitempty" bson:"meta,omitempty"`
	Nodes []Node `json:"nodes" bson:"nodes"`
}

// Edge is a derived, undirected edge keyed by its sorted endpoint pair.
// A is always lexicographically smaller than B.
type Edge struct {
	A string `json:"a" bson:"a"`
	B string `json:"b" bson:"b"`
}

// UnmarshalDocument deserializes JSON bytes to a Document.
func UnmarshalDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return &doc, nil
}

// MarshalDocument serializes a Document to pretty-printed JSON bytes.
func MarshalDocument(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// ReadDocument decodes a JSON document from an io.Reader.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// ReadDocumentFile reads a JSON file and returns the decoded Document.
func ReadDocumentFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// WriteDocumentFile writes a Document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(doc *Document, path string) error {
	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
