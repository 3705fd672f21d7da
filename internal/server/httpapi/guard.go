package httpapi

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/metrics"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
)

// TokenVerifier is satisfied by *auth.Issuer.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Guard admits requests carrying a valid "Authorization: Bearer <token>"
// header and attaches the token identity to the request context. Other
// requests get 401 and never reach next.
func Guard(v TokenVerifier, logger logging.Logger) func(http.Handler) http.Handler {
	logger = logger.With("module", "guard")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				reject(w)
				return
			}

			claims, err := v.Verify(token)
			if err != nil {
				logger.Debug(r.Context(), "token rejected", "error", err)
				reject(w)
				return
			}

			ctx := auth.WithIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get(common.AuthorizationHeaderName)
	if len(h) < len(common.BearerPrefix) || !strings.EqualFold(h[:len(common.BearerPrefix)], common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(common.BearerPrefix):])
	return token, token != ""
}

func reject(w http.ResponseWriter) {
	metrics.GuardRejectionsTotal.Inc()
	status, msg := httpError(common.ErrUnauthenticated)
	writeError(w, status, msg)
}
