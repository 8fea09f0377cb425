package services

import (
	"context"
	"errors"

	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
	"go.uber.org/zap"
)

// CartService handles cart items
type CartService struct {
	store  repositories.DocumentStore
	logger *zap.Logger
}

// NewCartService creates a new CartService instance
func NewCartService(store repositories.DocumentStore, logger *zap.Logger) *CartService {
	return &CartService{
		store:  store,
		logger: logger,
	}
}

// Create stores a cart item and returns its id
func (s *CartService) Create(ctx context.Context, doc models.Document) (string, error) {
	if doc == nil {
		return "", ErrEmptyDocument
	}

	id, err := s.store.Insert(ctx, doc)
	if err != nil {
		return "", s.storeError("failed to create cart item", err)
	}

	s.logger.Info("cart item created", zap.String("cart_item_id", id))
	return id, nil
}

// List returns cart items, restricted to one product name when pName is set
func (s *CartService) List(ctx context.Context, pName string) ([]models.Document, error) {
	var filter repositories.Filter
	if pName != "" {
		filter = repositories.Filter{models.CartProductNameField: pName}
	}

	docs, err := s.store.FindMany(ctx, filter)
	if err != nil {
		return nil, s.storeError("failed to list cart items", err)
	}
	return docs, nil
}

// Get returns a single cart item
func (s *CartService) Get(ctx context.Context, id string) (models.Document, error) {
	doc, err := s.store.FindOne(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, s.storeError("failed to get cart item", err)
	}
	return doc, nil
}

// Delete removes a cart item; deleting a missing item reports zero deletions
func (s *CartService) Delete(ctx context.Context, id string) (*repositories.DeleteResult, error) {
	result, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, s.storeError("failed to delete cart item", err)
	}
	return result, nil
}

func (s *CartService) storeError(message string, err error) error {
	s.logger.Error(message, zap.Error(err))
	return WrapStore(message, err)
}
