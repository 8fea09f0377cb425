package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/upb/sportsgear-api/middleware"
	"github.com/upb/sportsgear-api/models"
	"github.com/upb/sportsgear-api/repositories"
	"github.com/upb/sportsgear-api/services"
	"github.com/upb/sportsgear-api/utils"
	"go.uber.org/zap"
)

// InsertResponse reports the id assigned to a new document
type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}

// ProductService defines the interface for product operations
type ProductService interface {
	Create(ctx context.Context, doc models.Document) (string, error)
	List(ctx context.Context) ([]models.Document, error)
	Get(ctx context.Context, id string) (models.Document, error)
	Update(ctx context.Context, id string, fields models.Document) (*repositories.UpdateResult, error)
	Delete(ctx context.Context, id string) (*repositories.DeleteResult, error)
	ListByOwner(ctx context.Context, owner string) ([]models.Document, error)
}

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	service ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate handles POST /products
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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

// HandleList handles GET /products
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, docs)
}

// HandleGet handles GET /products/{id}
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, doc)
}

// HandleUpdate handles PUT /products/{id}
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var fields models.Document
	if err := utils.DecodeJSON(w, r, &fields); err != nil {
		HandleBodyError(w, err, h.logger)
		return
	}

	result, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, result)
}

// HandleDelete handles DELETE /products/{id}
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, result)
}

// HandleListOwned handles GET /myEquipment.
// The owner filter is taken from the verified session, never from the query.
func (h *ProductHandler) HandleListOwned(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSessionFromContext(r.Context())
	if session == nil {
		HandleServiceError(w, services.ErrUnauthenticated, h.logger)
		return
	}

	docs, err := h.service.ListByOwner(r.Context(), strings.TrimSpace(session.Identity))
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, docs)
}
