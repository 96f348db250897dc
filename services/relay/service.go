package relay

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/modelrelay/relay/services"
	"github.com/modelrelay/relay/services/routing"
	"github.com/modelrelay/relay/services/secrets"
	"github.com/modelrelay/relay/services/upstream"
	"go.uber.org/zap"
)

// PlaceholderReply is returned when the upstream response does not carry
// the expected choices shape. The request still succeeds.
const PlaceholderReply = "No valid reply received from the model."

// UpstreamClient issues a single OpenAI-compatible chat completion call.
type UpstreamClient interface {
	ChatCompletion(ctx context.Context, endpoint, credential string, req *upstream.ChatRequest) (*upstream.ChatResponse, error)
}

// Request is one inbound relay request.
type Request struct {
	Message string
	ModelID string
}

// Result is the outcome of a successful relay.
type Result struct {
	RequestID     string
	ModelID       string
	Provider      string
	UpstreamModel string
	Reply         string
	LatencyMs     int64
}

// Service converts one inbound chat request into exactly one outbound
// upstream call and maps the outcome back to a client-facing result.
// It is stateless between calls; the routing table and credential store
// are read-only shared data.
type Service struct {
	table   *routing.Table
	secrets secrets.Store
	client  UpstreamClient
	logger  *zap.Logger
}

// NewService creates a relay service with its dependencies injected.
func NewService(table *routing.Table, store secrets.Store, client UpstreamClient, logger *zap.Logger) *Service {
	return &Service{
		table:   table,
		secrets: store,
		client:  client,
		logger:  logger,
	}
}

// Relay runs the routing pipeline: resolve the route, resolve the
// credential, call the upstream once, extract the reply. Each stage either
// proceeds or terminates the request with a domain error; nothing is
// retried.
func (s *Service) Relay(ctx context.Context, req Request) (*Result, error) {
	requestID := uuid.New().String()
	start := time.Now()

	entry, ok := s.table.Lookup(req.ModelID)
	if !ok {
		s.logger.Warn("model not configured",
			zap.String("request_id", requestID),
			zap.String("model_id", req.ModelID))
		return nil, services.ErrModelNotConfigured
	}

	credential, ok := s.secrets.Resolve(entry.CredentialEnv)
	if !ok {
		// Operator-facing: the route exists but its credential does not.
		// Fails closed, no fallback key.
		s.logger.Error("credential missing for configured model",
			zap.String("request_id", requestID),
			zap.String("model_id", req.ModelID),
			zap.String("credential_env", entry.CredentialEnv))
		return nil, services.ErrCredentialMissing
	}

	upstreamReq := &upstream.ChatRequest{
		Model: entry.UpstreamModel,
		Messages: []upstream.Message{
			{Role: "user", Content: req.Message},
		},
	}

	resp, err := s.client.ChatCompletion(ctx, entry.Endpoint, credential, upstreamReq)
	if err != nil {
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) {
			s.logger.Error("upstream call failed",
				zap.String("request_id", requestID),
				zap.String("model_id", req.ModelID),
				zap.Int("upstream_status", statusErr.StatusCode))
			return nil, services.NewDomainError(services.ErrorTypeUpstream, statusErr.Error(), err)
		}
		s.logger.Error("upstream call failed",
			zap.String("request_id", requestID),
			zap.String("model_id", req.ModelID),
			zap.Error(err))
		return nil, services.NewDomainError(services.ErrorTypeUpstream, "upstream provider unavailable", err)
	}

	reply := extractReply(resp)

	result := &Result{
		RequestID:     requestID,
		ModelID:       req.ModelID,
		Provider:      entry.Provider,
		UpstreamModel: entry.UpstreamModel,
		Reply:         reply,
		LatencyMs:     time.Since(start).Milliseconds(),
	}

	s.logger.Info("relay completed",
		zap.String("request_id", requestID),
		zap.String("model_id", req.ModelID),
		zap.String("provider", entry.Provider),
		zap.Int64("latency_ms", result.LatencyMs))

	return result, nil
}

// extractReply pulls the first choice's message content. A response
// missing the expected shape degrades to the placeholder reply instead of
// failing the request.
func extractReply(resp *upstream.ChatResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return PlaceholderReply
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return PlaceholderReply
	}
	return content
}
