package handlers

import (
	"net/http"

	"github.com/modelrelay/relay/services/routing"
	"github.com/modelrelay/relay/utils"
	"go.uber.org/zap"
)

// ModelsResponse lists the selectable models grouped by provider, in the
// shape the UI dropdown renders directly.
type ModelsResponse struct {
	Groups []routing.ModelGroup `json:"groups"`
}

// ModelsHandler serves the routing table's model list
type ModelsHandler struct {
	table  *routing.Table
	logger *zap.Logger
}

// NewModelsHandler creates a new ModelsHandler
func NewModelsHandler(table *routing.Table, logger *zap.Logger) *ModelsHandler {
	return &ModelsHandler{
		table:  table,
		logger: logger,
	}
}

// HandleModels handles GET /api/models
func (h *ModelsHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	resp := ModelsResponse{Groups: h.table.Groups()}
	if err := utils.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.logger.Error("failed to write models response", zap.Error(err))
	}
}
