package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/forgelabs/appforge/internal/logic/authservice"
	"github.com/forgelabs/appforge/pkg/response"
	"github.com/forgelabs/appforge/pkg/token"
)

type claimsCtxKey struct{}

// ClaimsFromContext returns the verified token claims put there by
// RequireAuth. The second value is false outside a protected route.
func ClaimsFromContext(ctx context.Context) (token.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(token.Claims)
	return claims, ok
}

// RequireAuth verifies the Bearer access token and stores its claims in the
// request context. Requests without a valid access token get 401.
func RequireAuth(auth authservice.Service) func(next http.Handler) http.Handler {
	respCons := response.NewResponseConstructor(false)
	respWriter := response.New()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			scheme, raw, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
				err := fmt.Errorf("missing bearer token")
				resp := respCons.HTTPError(ctx, response.ErrUnauthorized, err)
				respWriter.JSON(http.StatusUnauthorized, w, r, resp)
				return
			}

			claims, err := auth.Verify(ctx, strings.TrimSpace(raw))
			if err != nil {
				resp := respCons.HTTPError(ctx, response.ErrUnauthorized, err)
				respWriter.JSON(http.StatusUnauthorized, w, r, resp)
				return
			}

			ctx = context.WithValue(ctx, claimsCtxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
