package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/your-org/catalog/internal/domain"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// responder writes JSON responses and maps domain error kinds to status codes
type responder struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h responder) respondJSON(w http.ResponseWriter, status int, data interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
	}
}

// respondError sends an error response
func (h responder) respondError(w http.ResponseWriter, status int, message, requestID string) {
	h.respondJSON(w, status, map[string]string{
		"error":      message,
		"request_id": requestID,
	}, requestID)
}

// respondDomainError maps validation to 400, not found to 404 and everything else to 500.
// Storage details are logged, not returned.
func (h responder) respondDomainError(w http.ResponseWriter, err error, action, requestID string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		h.logger.Warn(action+" rejected", zap.String("request_id", requestID), zap.Error(err))
		h.respondError(w, http.StatusBadRequest, err.Error(), requestID)
	case errors.Is(err, domain.ErrNotFound):
		h.respondError(w, http.StatusNotFound, err.Error(), requestID)
	default:
		h.logger.Error(action+" failed", zap.String("request_id", requestID), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to "+action, requestID)
	}
}

// decodeBody decodes a JSON request body into dst
func (h responder) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, requestID string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			h.respondError(w, http.StatusBadRequest, "request body is required", requestID)
			return false
		}
		h.logger.Warn("failed to decode request body",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		h.respondError(w, http.StatusBadRequest, "invalid request body", requestID)
		return false
	}
	return true
}
