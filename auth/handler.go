package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/upb/sportsgear-api/config"
	"github.com/upb/sportsgear-api/services"
	"github.com/upb/sportsgear-api/utils"
	"go.uber.org/zap"
)

// LoginRequest is the body of POST /jwt.
// Email is accepted as an alias of Identity; Identity wins when both are set.
type LoginRequest struct {
	Identity string `json:"identity" validate:"required,max=254"`
	Email    string `json:"email"`
}

// normalize trims both keys and folds the alias into Identity
func (r *LoginRequest) normalize() {
	r.Identity = strings.TrimSpace(r.Identity)
	r.Email = strings.TrimSpace(r.Email)
	if r.Identity == "" {
		r.Identity = r.Email
	}
}

// LoginResponse reports the issued credential's expiry; the credential itself travels in the cookie
type LoginResponse struct {
	Success   bool      `json:"success"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LogoutResponse is returned by POST /logOut
type LogoutResponse struct {
	Success bool `json:"success"`
}

// Handler handles the session cookie lifecycle (login, logout).
type Handler struct {
	cfg    config.AuthConfig
	tokens *TokenService
	logger *zap.Logger
}

// NewHandler creates a new auth handler
func NewHandler(cfg config.AuthConfig, tokens *TokenService, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
	}
}

// HandleLogin issues a credential for the posted identity and sets it as the session cookie
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	req.normalize()

	if err := utils.ValidateStruct(req); err != nil {
		if !utils.IsValidationError(err) {
			h.logger.Error("login request validation could not run", zap.Error(err))
			_ = utils.WriteInternalServerError(w, "")
			return
		}
		_ = utils.WriteBadRequest(w, "Validation failed", map[string]interface{}{
			"fields": utils.GetValidationFields(err),
		})
		return
	}

	token, expiresAt, err := h.tokens.Issue(req.Identity)
	if err != nil {
		if services.IsValidationError(err) {
			_ = utils.WriteBadRequest(w, "Validation failed", nil)
			return
		}
		h.logger.Error("failed to issue credential", zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Failed to issue credential")
		return
	}

	http.SetCookie(w, h.sessionCookie(token, int(h.tokens.TTL().Seconds())))

	h.logger.Info("credential issued", zap.String("identity", req.Identity))
	_ = utils.WriteOK(w, LoginResponse{Success: true, ExpiresAt: expiresAt})
}

// HandleLogout clears the session cookie and revokes the credential when revocation is enabled.
// It always succeeds.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token := ExtractToken(r, h.cfg.CookieName); token != "" {
		if err := h.tokens.Revoke(r.Context(), token); err != nil {
			h.logger.Warn("failed to revoke credential", zap.Error(err))
		}
	}

	http.SetCookie(w, h.sessionCookie("", -1))
	_ = utils.WriteOK(w, LogoutResponse{Success: true})
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	sameSite := sameSiteMode(h.cfg.CookieSameSite)
	return &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		// browsers drop SameSite=None cookies that are not Secure
		Secure:   h.cfg.CookieSecure || sameSite == http.SameSiteNoneMode,
		SameSite: sameSite,
	}
}

// ExtractToken returns the bearer token from the Authorization header,
// falling back to the named session cookie.
func ExtractToken(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}

	if cookieName == "" {
		return ""
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func sameSiteMode(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "lax":
		return http.SameSiteLaxMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
