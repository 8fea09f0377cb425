package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
)

// MockDocumentStore is a mock implementation of DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Insert(ctx context.Context, doc models.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) FindOne(ctx context.Context, id string) (models.Document, error) {
	args := m.Called(ctx, id)
	if doc := args.Get(0); doc != nil {
		return doc.(models.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentStore) FindMany(ctx context.Context, filter repositories.Filter) ([]models.Document, error) {
	args := m.Called(ctx, filter)
	if docs := args.Get(0); docs != nil {
		return docs.([]models.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentStore) Update(ctx context.Context, id string, fields models.Document, upsert bool) (*repositories.UpdateResult, error) {
	args := m.Called(ctx, id, fields, upsert)
	if res := args.Get(0); res != nil {
		return res.(*repositories.UpdateResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDocumentStore) Delete(ctx context.Context, id string) (*repositories.DeleteResult, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*repositories.DeleteResult), args.Error(1)
	}
	return nil, args.Error(1)
}
