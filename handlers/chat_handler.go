package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/modelrelay/relay/services/relay"
	"github.com/modelrelay/relay/utils"
	"go.uber.org/zap"
)

// ChatRequest is the inbound chat message: opaque text plus the client's
// model selection.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	ModelID string `json:"modelId" validate:"required"`
}

// RelayService defines the interface for the relay pipeline
type RelayService interface {
	// Relay forwards one chat message to the routed upstream provider
	Relay(ctx context.Context, req relay.Request) (*relay.Result, error)
}

// ChatHandler handles chat relay HTTP requests
type ChatHandler struct {
	service RelayService
	logger  *zap.Logger
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service RelayService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger,
	}
}

// HandleChat handles POST /api/chat
// Thin handler: parse, validate, delegate, map the outcome.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var chatReq ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&chatReq); err != nil {
		h.logger.Warn("failed to parse request body", zap.Error(err))
		_ = utils.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := utils.ValidateStruct(&chatReq); err != nil {
		h.logger.Warn("request validation failed", zap.Error(err))
		_ = utils.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Relay(ctx, relay.Request{
		Message: chatReq.Message,
		ModelID: chatReq.ModelID,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteReply(w, result.Reply); err != nil {
		h.logger.Error("failed to write response",
			zap.String("request_id", result.RequestID),
			zap.Error(err))
	}
}
