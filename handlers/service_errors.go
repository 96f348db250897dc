package handlers

import (
	"errors"
	"net/http"

	"github.com/modelrelay/relay/services"
	"github.com/modelrelay/relay/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses.
// Unconfigured models are a caller error (400); a missing credential is an
// operator error and surfaces as 500, as do upstream failures.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsValidationError(err):
		if werr := utils.WriteBadRequest(w, err.Error()); werr != nil {
			logger.Error("failed to write bad request response", zap.Error(werr))
		}

	case services.IsRoutingError(err):
		if werr := utils.WriteBadRequest(w, "Selected model not configured"); werr != nil {
			logger.Error("failed to write bad request response", zap.Error(werr))
		}

	case services.IsCredentialError(err):
		// Deployment misconfiguration, not a caller error. The generic
		// message avoids leaking the credential reference.
		logger.Error("credential resolution failed", zap.Error(err))
		if werr := utils.WriteInternalServerError(w, "Model credential is not configured"); werr != nil {
			logger.Error("failed to write internal error response", zap.Error(werr))
		}

	case services.IsUpstreamError(err):
		// The domain error message already carries the upstream status and
		// a bounded body excerpt.
		var domainErr *services.DomainError
		message := "Upstream provider error"
		if errors.As(err, &domainErr) {
			message = domainErr.Message
		}
		if werr := utils.WriteInternalServerError(w, message); werr != nil {
			logger.Error("failed to write internal error response", zap.Error(werr))
		}

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		if werr := utils.WriteInternalServerError(w, "An internal error occurred"); werr != nil {
			logger.Error("failed to write internal error response", zap.Error(werr))
		}
	}
}
