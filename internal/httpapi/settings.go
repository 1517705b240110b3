// Package httpapi exposes the configuration record to external collaborators
// over HTTP. The handlers use only the record's mapping contract
// (ToMap/Update); they hold no state of their own.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/thom899g/autonomous-adaptive-integration-nexus--aain/internal/config"
)

// SettingsHandler serves the current configuration and accepts partial
// updates.
type SettingsHandler struct {
	manager *config.Manager
	logger  *zap.Logger
}

func NewSettingsHandler(m *config.Manager, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{manager: m, logger: logger}
}

func (h *SettingsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/settings", h.handleSettings)
}

// handleSettings: GET /settings returns the full record; PATCH /settings
// applies a partial update from a JSON object.
func (h *SettingsHandler) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeSettings(w)
	case http.MethodPatch:
		h.applyUpdate(w, r)
	default:
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	}
}

func (h *SettingsHandler) writeSettings(w http.ResponseWriter) {
	cfg := h.manager.Config()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cfg.ToMap()); err != nil {
		h.logger.Error("Failed to encode settings", zap.Error(err))
	}
}

func (h *SettingsHandler) applyUpdate(w http.ResponseWriter, r *http.Request) {
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}

	if err := h.manager.Update(updates); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			h.logger.Warn("Settings update rejected",
				zap.String("field", verr.Field),
				zap.Error(verr),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": verr.Error(),
				"field": verr.Field,
			})
			return
		}
		h.logger.Error("Settings update failed", zap.Error(err))
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	h.writeSettings(w)
}
