package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-tracker/internal/platform/httpx"
	"pet-care-tracker/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// RequireAuth corta acá mismo:
// - sin Bearer token => 401
// - token inválido/expirado => 403
// - válido => claims en el context para los handlers.
func RequireAuth(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				httpx.Error(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				httpx.Error(w, http.StatusForbidden, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
