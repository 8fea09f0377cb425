// Package memory implements an in-process document store used for local
// development and tests. Documents are lost when the process exits.
package memory

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
)

// Store is a mutex-guarded map of documents keyed by uuid
type Store struct {
	mu   sync.RWMutex
	docs map[string]models.Document
	// insertion order keeps FindMany output stable
	order []string
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{docs: make(map[string]models.Document)}
}

// NewRepositories creates independent product and cart collections
func NewRepositories() *repositories.Repositories {
	return &repositories.Repositories{
		Products:  NewStore(),
		CartItems: NewStore(),
	}
}

// Insert stores a copy of doc under a fresh id
func (s *Store) Insert(ctx context.Context, doc models.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	stored := doc.WithoutID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[id] = stored
	s.order = append(s.order, id)
	return id, nil
}

// FindOne returns a copy of the document with the given id
func (s *Store) FindOne(ctx context.Context, id string) (models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, repositories.ErrDocumentNotFound
	}
	return withID(id, doc), nil
}

// FindMany returns copies of every document matching filter, in insertion order
func (s *Store) FindMany(ctx context.Context, filter repositories.Filter) ([]models.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Document, 0)
	for _, id := range s.order {
		doc, ok := s.docs[id]
		if !ok || !matches(doc, filter) {
			continue
		}
		out = append(out, withID(id, doc))
	}
	return out, nil
}

// Update merges fields into the stored document
func (s *Store) Update(ctx context.Context, id string, fields models.Document, upsert bool) (*repositories.UpdateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		if !upsert {
			return &repositories.UpdateResult{}, nil
		}
		s.docs[id] = fields.WithoutID()
		s.order = append(s.order, id)
		return &repositories.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
	}

	changed := false
	updated := doc.Clone()
	for k, v := range fields.WithoutID() {
		if cur, exists := updated[k]; !exists || !reflect.DeepEqual(cur, v) {
			changed = true
		}
		updated[k] = v
	}
	s.docs[id] = updated

	result := &repositories.UpdateResult{MatchedCount: 1}
	if changed {
		result.ModifiedCount = 1
	}
	return result, nil
}

// Delete removes the document with the given id
func (s *Store) Delete(ctx context.Context, id string) (*repositories.DeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return &repositories.DeleteResult{}, nil
	}
	delete(s.docs, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return &repositories.DeleteResult{DeletedCount: 1}, nil
}

// HealthCheck always succeeds
func (s *Store) HealthCheck(context.Context) error {
	return nil
}

func withID(id string, doc models.Document) models.Document {
	out := doc.Clone()
	out[models.IDField] = id
	return out
}

func matches(doc models.Document, filter repositories.Filter) bool {
	for k, want := range filter {
		v, ok := doc[k].(string)
		if !ok || v != want {
			return false
		}
	}
	return true
}
