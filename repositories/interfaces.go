package repositories

import (
	"context"
	"errors"

	"github.com/upb/sportsgear-api/models"
)

var (
	// ErrDocumentNotFound is returned when no document matches the given id
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidID is returned when an id is not in the store's identifier format
	ErrInvalidID = errors.New("invalid document id")
)

// Filter is a flat equality filter: every key must equal its value
type Filter map[string]string

// UpdateResult reports the outcome of an update
type UpdateResult struct {
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	UpsertedCount int64  `json:"upsertedCount"`
	UpsertedID    string `json:"upsertedId,omitempty"`
}

// DeleteResult reports the outcome of a delete
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// DocumentStore is a CRUD facade over one document collection
type DocumentStore interface {
	// Insert stores a new document and returns its id
	Insert(ctx context.Context, doc models.Document) (string, error)

	// FindOne retrieves a document by id, or ErrDocumentNotFound
	FindOne(ctx context.Context, id string) (models.Document, error)

	// FindMany retrieves all documents matching the filter; nil matches everything
	FindMany(ctx context.Context, filter Filter) ([]models.Document, error)

	// Update merges fields into the document with the given id.
	// With upsert set, a missing document is created under that id.
	Update(ctx context.Context, id string, fields models.Document, upsert bool) (*UpdateResult, error)

	// Delete removes the document with the given id; deleting a missing document is not an error
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

// HealthChecker is implemented by backends that can report connectivity
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Repositories holds the collections served by the API
type Repositories struct {
	Products  DocumentStore
	CartItems DocumentStore
}
