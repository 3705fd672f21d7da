// Package httpapi exposes the authentication service over HTTP/JSON: the
// /api/auth endpoints, the bearer token guard, and the middleware stack.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
)

// AuthService is the subset of services.AuthService the handlers call.
type AuthService interface {
	Signup(ctx context.Context, req services.SignupRequest) (*services.SignupResult, error)
	Login(ctx context.Context, req services.LoginRequest) (*services.TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*services.AccessToken, error)
}

type Handler struct {
	auth         AuthService
	logger       logging.Logger
	cookieSecure bool
	refreshTTL   time.Duration
}

// NewHandler builds the auth handlers. refreshTTL becomes the refresh
// cookie's Max-Age.
func NewHandler(s AuthService, l logging.Logger, cookieSecure bool, refreshTTL time.Duration) *Handler {
	return &Handler{
		auth:         s,
		logger:       l.With("module", "http_handler"),
		cookieSecure: cookieSecure,
		refreshTTL:   refreshTTL,
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(r.Context(), w, err)
		return
	}

	res, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		h.respondError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// Login handles POST /api/auth/login. The access token goes in the body,
// the refresh token only in the cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(r.Context(), w, err)
		return
	}

	pair, err := h.auth.Login(r.Context(), req)
	if err != nil {
		h.respondError(r.Context(), w, err)
		return
	}

	h.setRefreshCookie(w, pair.RefreshToken)
	writeJSON(w, http.StatusOK, services.AccessToken{AccessToken: pair.AccessToken})
}

// Refresh handles POST /api/auth/refresh. A request without the cookie is
// rejected before the service is called.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(common.RefreshTokenCookieName)
	if err != nil || c.Value == "" {
		h.respondError(r.Context(), w, common.ErrMissingRefreshToken)
		return
	}

	res, err := h.auth.RefreshAccessToken(r.Context(), c.Value)
	if err != nil {
		h.respondError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Me handles GET /api/auth/me behind the guard and echoes the token identity.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.respondError(r.Context(), w, common.ErrUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

// Logout expires the refresh cookie. Issued tokens stay valid until exp.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearRefreshCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, err error) {
	status, msg := httpError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(ctx, "request failed", "error", err)
	}
	writeError(w, status, msg)
}
