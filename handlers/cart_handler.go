package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
	"github.com/upb/sportsgear-api/utils"
	"go.uber.org/zap"
)

// CartService defines the interface for cart operations
type CartService interface {
	Create(ctx context.Context, doc models.Document) (string, error)
	List(ctx context.Context, pName string) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Delete(ctx context.Context, id string) (*repositories.DeleteResult, error)
}

// CartHandler handles cart item HTTP requests
type CartHandler struct {
	service CartService
	logger  *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(service CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate handles POST /cartItem
func (h *CartHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := utils.DecodeJSON(w, r, &doc); err != nil {
		HandleBodyError(w, err, h.logger)
		return
	}

	id, err := h.service.Create(r.Context(), doc)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteCreated(w, InsertResponse{InsertedID: id})
}

// HandleList handles GET /cartItem with an optional pName filter
func (h *CartHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List(r.Context(), r.URL.Query().Get(models.CartProductNameField))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, docs)
}

// HandleGet handles GET /cartItem/{id}
func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, doc)
}

// HandleDelete handles DELETE /cartItem/{id}
func (h *CartHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, result)
}
