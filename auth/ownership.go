package auth

import (
	"strings"

	"github.com/upb/sportsgear-api/services"
)

// Authorize allows the request only when owner names the session's identity.
// Identities compare case-insensitively after trimming.
func Authorize(session *Session, owner string) error {
	if session == nil || session.Identity == "" {
		return services.ErrUnauthenticated
	}

	owner = strings.TrimSpace(owner)
	if owner == "" || !strings.EqualFold(owner, strings.TrimSpace(session.Identity)) {
		return services.ErrForbidden
	}
	return nil
}
