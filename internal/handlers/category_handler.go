package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
	"github.com/your-org/catalog/internal/middleware"
)

// CategoryUsecases groups the operations the category handler depends on
type CategoryUsecases struct {
	Add    domain.CategoryCreator
	List   domain.CategoryLister
	Get    domain.CategoryFinder
	Update domain.CategoryUpdater
	Delete domain.CategoryDeleter
}

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	responder
	usecases CategoryUsecases
	cache    domain.CategoryCache
}

// NewCategoryHandler creates a new category handler. cache may be nil.
func NewCategoryHandler(usecases CategoryUsecases, cache domain.CategoryCache, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		responder: responder{logger: logger},
		usecases:  usecases,
		cache:     cache,
	}
}

// Routes mounts the category endpoints
func (h *CategoryHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateCategory)
	r.Get("/", h.ListCategories)
	r.Get("/{id}", h.GetCategory)
	r.Put("/{id}", h.UpdateCategory)
	r.Delete("/{id}", h.DeleteCategory)
}

// CreateCategory handles POST /category
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var payload domain.AddCategory
	if !h.decodeBody(w, r, &payload, requestID) {
		return
	}

	category, err := h.usecases.Add.Create(ctx, payload)
	if err != nil {
		h.respondDomainError(w, err, "create category", requestID)
		return
	}

	h.respondJSON(w, http.StatusCreated, category, requestID)
}

// ListCategories handles GET /category
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	categories, err := h.usecases.List.GetAll(ctx)
	if err != nil {
		h.respondDomainError(w, err, "list categories", requestID)
		return
	}

	h.respondJSON(w, http.StatusOK, categories, requestID)
}

// GetCategory handles GET /category/{id}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id := chi.URLParam(r, "id")
	if !domain.IsValidID(id) {
		h.respondError(w, http.StatusBadRequest, "invalid 'id' format", requestID)
		return
	}

	category, err := h.usecases.Get.FindByID(ctx, id)
	if err != nil {
		h.respondDomainError(w, err, "get category", requestID)
		return
	}
	if category.IsEmpty() {
		h.respondError(w, http.StatusNotFound, "category not found", requestID)
		return
	}

	h.respondJSON(w, http.StatusOK, category, requestID)
}

// UpdateCategory handles PUT /category/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := chi.URLParam(r, "id")

	var payload domain.UpdateCategory
	if !h.decodeBody(w, r, &payload, requestID) {
		return
	}

	category, err := h.usecases.Update.Update(ctx, id, payload)
	if err != nil {
		h.respondDomainError(w, err, "update category", requestID)
		return
	}

	h.invalidate(r, id)
	h.respondJSON(w, http.StatusOK, category, requestID)
}

// DeleteCategory handles DELETE /category/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	id := chi.URLParam(r, "id")

	category, err := h.usecases.Delete.Delete(ctx, id)
	if err != nil {
		h.respondDomainError(w, err, "delete category", requestID)
		return
	}

	h.invalidate(r, id)
	h.respondJSON(w, http.StatusOK, category, requestID)
}

// invalidate drops a stale snapshot used by product expansion
func (h *CategoryHandler) invalidate(r *http.Request, id string) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Delete(r.Context(), id); err != nil {
		h.logger.Warn("failed to invalidate cached category",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}
