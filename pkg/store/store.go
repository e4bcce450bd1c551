// Package store persists named ecp documents.
//
// This package defines a small Store interface with implementations for
// different backends:
//   - file: JSON files in a local directory, for CLI-style workflows
//   - redis: Redis-backed storage for shared deployments
//   - mongo: MongoDB-backed storage for shared deployments
//
// Every save stamps the document with a fresh revision id, so callers can
// tell whether a named document changed between loads. Stores hold
// serialized documents only; they never retain live model objects.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/terradyn/geomodel/pkg/ecp"
)

// Record wraps a stored document with bookkeeping metadata.
type Record struct {
	Name     string    `json:"name" bson:"name"`
	Revision string    `json:"revision" bson:"revision"`
	SavedAt  time.Time `json:"saved_at" bson:"saved_at"`
	Data     []byte    `json:"data" bson:"data"`
}

// Store is the interface for document storage backends.
type Store interface {
	// Save serializes doc under name, replacing any previous revision,
	// and returns the stored record.
	Save(ctx context.Context, name string, doc *ecp.Document) (*Record, error)

	// Load retrieves and decodes the document stored under name.
	// Fails with a NOT_FOUND coded error when the name is unknown.
	Load(ctx context.Context, name string) (*ecp.Document, error)

	// Delete removes the document stored under name.
	// Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored document names.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// newRecord serializes doc and stamps it with a fresh revision.
func newRecord(name string, doc *ecp.Document) (*Record, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return &Record{
		Name:     name,
		Revision: uuid.NewString(),
		SavedAt:  time.Now().UTC(),
		Data:     data,
	}, nil
}

// decodeRecord parses the document held by a record.
func decodeRecord(rec *Record) (*ecp.Document, error) {
	var doc ecp.Document
	if err := json.Unmarshal(rec.Data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", rec.Name, err)
	}
	return &doc, nil
}
