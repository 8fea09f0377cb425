package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
)

// MockProductService is a mock implementation of ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, doc models.Document) (string, error) {
	args := m.Called(ctx, doc)
	return args.String(0), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context) ([]models.Document, error) {
	args := m.Called(ctx)
	if docs := args.Get(0); docs != nil {
		return docs.([]models.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (models.Document, error) {
	args := m.Called(ctx, id)
	if doc := args.Get(0); doc != nil {
		return doc.(models.Document), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, fields models.Document) (*repositories.UpdateResult, error) {
	args := m.Called(ctx, id, fields)
	if res := args.Get(0); res != nil {
		return res.(*repositories.UpdateResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) (*repositories.DeleteResult, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*repositories.DeleteResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductService) ListByOwner(ctx context.Context, owner string) ([]models.Document, error) {
	args := m.Called(ctx, owner)
	if docs := args.Get(0); docs != nil {
		return docs.([]models.Document), args.Error(1)
	}
	return nil, args.Error(1)
}
