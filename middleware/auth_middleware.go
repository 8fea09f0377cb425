package middleware

import (
	"context"
	"net/http"

	"github.com/upb/sportsgear-api/auth"
	"github.com/upb/sportsgear-api/services"
	"github.com/upb/sportsgear-api/utils"
	"go.uber.org/zap"
)

// OwnerQueryParam names the query parameter checked by RequireOwnership
const OwnerQueryParam = "email"

// TokenVerifier defines the interface for verifying credentials
type TokenVerifier interface {
	// Verify checks a credential and returns the session it carries
	Verify(ctx context.Context, token string) (*auth.Session, error)
}

// AuthMiddleware provides authentication middleware functionality
type AuthMiddleware struct {
	verifier   TokenVerifier
	cookieName string
	logger     *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware reading credentials from the
// Authorization header or the named session cookie
func NewAuthMiddleware(verifier TokenVerifier, cookieName string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:   verifier,
		cookieName: cookieName,
		logger:     logger,
	}
}

// RequireAuth is a middleware that requires a valid credential.
// Every rejection carries the same response body.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := auth.ExtractToken(r, m.cookieName)
		if token == "" {
			m.logger.Warn("missing credential",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path))
			_ = utils.WriteUnauthorized(w, services.ErrUnauthenticated.Message)
			return
		}

		session, err := m.verifier.Verify(ctx, token)
		if err != nil {
			m.logger.Warn("credential verification failed",
				zap.String("request_id", requestID),
				zap.String("path", r.URL.Path),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, services.ErrUnauthenticated.Message)
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("email", session.Identity))

		next.ServeHTTP(w, r.WithContext(WithSession(ctx, session)))
	})
}

// RequireOwnership is a middleware that admits the request only when the
// email query parameter names the authenticated identity.
// This should be called after RequireAuth
func (m *AuthMiddleware) RequireOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)
		session := GetSessionFromContext(ctx)
		owner := r.URL.Query().Get(OwnerQueryParam)

		if err := auth.Authorize(session, owner); err != nil {
			if services.IsUnauthenticatedError(err) {
				m.logger.Error("session not found in context",
					zap.String("request_id", requestID))
				_ = utils.WriteUnauthorized(w, services.ErrUnauthenticated.Message)
				return
			}

			m.logger.Warn("ownership check failed",
				zap.String("request_id", requestID),
				zap.String("email", session.Identity),
				zap.String("requested_owner", owner))
			_ = utils.WriteForbidden(w, "Access forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}
