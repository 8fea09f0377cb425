package services

import (
	"context"
	"errors"
	"sort"

	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
	"go.uber.org/zap"
)

// ProductService handles the product catalog
type ProductService struct {
	store  repositories.DocumentStore
	logger *zap.Logger
}

// NewProductService creates a new ProductService instance
func NewProductService(store repositories.DocumentStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		store:  store,
		logger: logger,
	}
}

// Create stores a new product listing and returns its id
func (s *ProductService) Create(ctx context.Context, doc models.Document) (string, error) {
	if doc == nil {
		return "", ErrEmptyDocument
	}

	id, err := s.store.Insert(ctx, doc)
	if err != nil {
		return "", s.storeError("failed to create product", err)
	}

	s.logger.Info("product created",
		zap.String("product_id", id),
		zap.String("owner", doc.Owner()))
	return id, nil
}

// List returns every product
func (s *ProductService) List(ctx context.Context) ([]models.Document, error) {
	docs, err := s.store.FindMany(ctx, nil)
	if err != nil {
		return nil, s.storeError("failed to list products", err)
	}
	return docs, nil
}

// Get returns a single product
func (s *ProductService) Get(ctx context.Context, id string) (models.Document, error) {
	doc, err := s.store.FindOne(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, s.storeError("failed to get product", err)
	}
	return doc, nil
}

// Update applies the whitelisted fields to a product, creating it when missing.
// Fields outside the whitelist are dropped.
func (s *ProductService) Update(ctx context.Context, id string, fields models.Document) (*repositories.UpdateResult, error) {
	accepted, dropped := models.FilterProductUpdate(fields)
	if len(dropped) > 0 {
		sort.Strings(dropped)
		s.logger.Debug("dropping non-updatable product fields",
			zap.String("product_id", id),
			zap.Strings("fields", dropped))
	}
	if len(accepted) == 0 {
		err := NewDomainError(ErrorTypeValidation, ErrNoUpdatableFields.Message, nil)
		if len(dropped) > 0 {
			err.WithDetail("ignoredFields", dropped)
		}
		return nil, err
	}

	result, err := s.store.Update(ctx, id, accepted, true)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidID) {
			return nil, ErrInvalidID
		}
		return nil, s.storeError("failed to update product", err)
	}
	return result, nil
}

// Delete removes a product; deleting a missing product reports zero deletions
func (s *ProductService) Delete(ctx context.Context, id string) (*repositories.DeleteResult, error) {
	result, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, s.storeError("failed to delete product", err)
	}

	if result.DeletedCount > 0 {
		s.logger.Info("product deleted", zap.String("product_id", id))
	}
	return result, nil
}

// ListByOwner returns the products whose owner field equals owner.
// Callers must have authorized owner against the session first.
func (s *ProductService) ListByOwner(ctx context.Context, owner string) ([]models.Document, error) {
	if owner == "" {
		return nil, ErrIdentityRequired
	}

	docs, err := s.store.FindMany(ctx, repositories.Filter{models.OwnerField: owner})
	if err != nil {
		return nil, s.storeError("failed to list owned products", err)
	}
	return docs, nil
}

func (s *ProductService) storeError(message string, err error) error {
	s.logger.Error(message, zap.Error(err))
	return WrapStore(message, err)
}
