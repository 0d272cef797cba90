package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
	"github.com/your-org/catalog/internal/middleware"
)

// ProductUsecases groups the operations the product handler depends on
type ProductUsecases struct {
	Add    domain.ProductCreator
	List   domain.ProductLister
	Get    domain.ProductFinder
	Update domain.ProductUpdater
	Delete domain.ProductDeleter
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	responder
	usecases ProductUsecases
	enricher domain.ProductEnricher
}

// NewProductHandler creates a new product handler. enricher may be nil.
func NewProductHandler(usecases ProductUsecases, enricher domain.ProductEnricher, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		responder: responder{logger: logger},
		usecases:  usecases,
		enricher:  enricher,
	}
}

// Routes mounts the product endpoints
func (h *ProductHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateProduct)
	r.Get("/", h.ListProducts)
	r.Get("/{id}", h.GetProduct)
	r.Put("/{id}", h.UpdateProduct)
	r.Delete("/{id}", h.DeleteProduct)
}

// CreateProduct handles POST /product
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var payload domain.AddProduct
	if !h.decodeBody(w, r, &payload, requestID) {
		return
	}

	product, err := h.usecases.Add.Create(ctx, payload)
	if err != nil {
		h.respondDomainError(w, err, "create product", requestID)
		return
	}

	h.respondJSON(w, http.StatusCreated, product, requestID)
}

// ListProducts handles GET /product. ?expand=category attaches category snapshots.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	products, err := h.usecases.List.GetAll(ctx)
	if err != nil {
		h.respondDomainError(w, err, "list products", requestID)
		return
	}

	if r.URL.Query().Get("expand") == "category" && h.enricher != nil {
		enriched, err := h.enricher.AttachCategories(ctx, products)
		if err != nil {
			h.logger.Error("failed to attach categories",
				zap.String("request_id", requestID),
				zap.Error(err),
			)
			h.respondError(w, http.StatusInternalServerError, "failed to list products", requestID)
			return
		}
		products = enriched
	}

	h.respondJSON(w, http.StatusOK, products, requestID)
}

// GetProduct handles GET /product/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	id := chi.URLParam(r, "id")
	if !domain.IsValidID(id) {
		h.respondError(w, http.StatusBadRequest, "invalid 'id' format", requestID)
		return
	}

	product, err := h.usecases.Get.FindByID(ctx, id)
	if err != nil {
		h.respondDomainError(w, err, "get product", requestID)
		return
	}
	if product.IsEmpty() {
		h.respondError(w, http.StatusNotFound, "product not found", requestID)
		return
	}

	h.respondJSON(w, http.StatusOK, product, requestID)
}

// UpdateProduct handles PUT /product/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var payload domain.UpdateProduct
	if !h.decodeBody(w, r, &payload, requestID) {
		return
	}

	product, err := h.usecases.Update.Update(ctx, chi.URLParam(r, "id"), payload)
	if err != nil {
		h.respondDomainError(w, err, "update product", requestID)
		return
	}

	h.respondJSON(w, http.StatusOK, product, requestID)
}

// DeleteProduct handles DELETE /product/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	product, err := h.usecases.Delete.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.respondDomainError(w, err, "delete product", requestID)
		return
	}

	h.respondJSON(w, http.StatusOK, product, requestID)
}
