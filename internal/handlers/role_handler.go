package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
	"github.com/your-org/catalog/internal/middleware"
)

// RoleHandler handles HTTP requests for roles. Roles are append-only.
type RoleHandler struct {
	responder
	add  domain.RoleCreator
	list domain.RoleLister
}

func NewRoleHandler(add domain.RoleCreator, list domain.RoleLister, logger *zap.Logger) *RoleHandler {
	return &RoleHandler{
		responder: responder{logger: logger},
		add:       add,
		list:      list,
	}
}

// Routes mounts the role endpoints
func (h *RoleHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateRole)
	r.Get("/", h.ListRoles)
}

// CreateRole handles POST /role
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var payload domain.AddRole
	if !h.decodeBody(w, r, &payload, requestID) {
		return
	}

	role, err := h.add.Create(ctx, payload)
	if err != nil {
		h.respondDomainError(w, err, "create role", requestID)
		return
	}

	h.respondJSON(w, http.StatusCreated, role, requestID)
}

// ListRoles handles GET /role
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	roles, err := h.list.GetAll(ctx)
	if err != nil {
		h.respondDomainError(w, err, "list roles", requestID)
		return
	}

	h.respondJSON(w, http.StatusOK, roles, requestID)
}
