package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/upb/sportsgear-api/config"
	"github.com/upb/sportsgear-api/services"
	"go.uber.org/zap"
)

var (
	// ErrInvalidToken is returned when the token is malformed, forged or has wrong claims
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked is returned when the token id is on the revocation list
	ErrTokenRevoked = errors.New("token revoked")
)

// TokenService issues and verifies HS256 credentials
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	issuer  string
	revoker Revoker
	now     func() time.Time
	logger  *zap.Logger
}

// TokenOption configures a TokenService
type TokenOption func(*TokenService)

// WithRevoker enables revocation checks on Verify
func WithRevoker(r Revoker) TokenOption {
	return func(s *TokenService) {
		s.revoker = r
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService from auth configuration
func NewTokenService(cfg config.AuthConfig, logger *zap.Logger, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the lifetime of issued credentials
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a credential for identity and returns it with its expiry
func (s *TokenService) Issue(identity string) (string, time.Time, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", time.Time{}, services.ErrIdentityRequired
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, services.WrapSigning(errors.New("signing secret is empty"))
	}

	now := s.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
		Email: identity,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, services.WrapSigning(err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature, expiry, issuer and revocation state of a credential
func (s *TokenService) Verify(ctx context.Context, tokenString string) (*Session, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if s.revoker != nil && claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check revocation: %w", err)
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return sessionFromClaims(claims), nil
}

// Revoke puts the credential's token id on the revocation list until it expires.
// It is a no-op when no revoker is configured or the credential is already invalid.
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	if s.revoker == nil {
		return nil
	}
	claims, err := s.parse(tokenString)
	if err != nil || claims.ID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Time.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	if tokenString == "" || len(s.secret) == 0 {
		return nil, ErrInvalidToken
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func sessionFromClaims(claims *Claims) *Session {
	session := &Session{
		Identity: claims.Email,
		TokenID:  claims.ID,
	}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session
}
