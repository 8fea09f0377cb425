// Package auth issues and verifies the signed credentials that gate
// identity-scoped routes, and manages the session cookie that carries them.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the claims carried by an issued credential
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Session is the verified identity attached to a request
type Session struct {
	Identity  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
