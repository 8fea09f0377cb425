package handlers

import (
	"errors"
	"net/http"

	"github.com/upb/sportsgear-api/services"
	"github.com/upb/sportsgear-api/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses.
// Store, signing and internal failures are logged with their cause. Errors
// outside the taxonomy are treated as internal with a generic message.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}
	if services.GetErrorType(err) == "" {
		err = services.WrapInternal("An unexpected error occurred", err)
	}

	var domainErr *services.DomainError
	errors.As(err, &domainErr)
	details := services.GetErrorDetails(err)
	if len(details) == 0 {
		details = nil
	}

	var writeErr error
	switch {
	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w, domainErr.Message)

	case services.IsValidationError(err):
		writeErr = utils.WriteBadRequest(w, domainErr.Message, details)

	case services.IsUnauthenticatedError(err):
		writeErr = utils.WriteUnauthorized(w, services.ErrUnauthenticated.Message)

	case services.IsForbiddenError(err):
		writeErr = utils.WriteForbidden(w, domainErr.Message)

	case services.IsStoreError(err):
		logger.Error("resource store error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "The resource store is unavailable")

	case services.IsSigningError(err):
		logger.Error("credential signing error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, "Failed to issue credential")

	case services.IsInternalError(err):
		logger.Error("internal server error", zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, domainErr.Message)

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		writeErr = utils.WriteInternalServerError(w, "An unexpected error occurred")
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}

// HandleBodyError answers a request whose body could not be decoded
func HandleBodyError(w http.ResponseWriter, err error, logger *zap.Logger) {
	logger.Debug("rejected request body", zap.Error(err))
	HandleServiceError(w, services.WrapError(services.ErrorTypeValidation, "Invalid request body", err), logger)
}
