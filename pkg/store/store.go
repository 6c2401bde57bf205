// Package store persists panorama map documents by name.
//
// This package defines the storage interface with implementations for
// different backends:
//   - file: JSON files in a config directory, for CLI usage
//   - mongo: MongoDB-backed storage for server deployments
//
// Documents are the authored input (nodes, connections, floorplan metadata);
// computed layouts are not stored here, they live in the cache keyed on the
// document hash.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/stangrad/wayfind/pkg/graph"
)

// Sentinel errors for storage operations.
var (
	// ErrNotFound is returned when a named document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidName is returned for names that cannot address a document.
	ErrInvalidName = errors.New("invalid document name")
)

// Store is the interface for document storage backends.
type Store interface {
	// Load retrieves a document by name.
	// Returns ErrNotFound if no document with that name exists.
	Load(ctx context.Context, name string) (*graph.Document, error)

	// Save stores a document under the given name, replacing any previous
	// version.
	Save(ctx context.Context, name string, doc *graph.Document) error

	// Delete removes a document. Deleting an absent name returns ErrNotFound.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored documents, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// ValidateName checks that a name can safely address a document in every
// backend. Names are non-empty and free of path separators and NULs.
func ValidateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return ErrInvalidName
	}
	return nil
}
