package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/response"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// RoleHintHeader carries the role hint for callers without a token.
const RoleHintHeader = "X-Role-Hint"

type roleKey struct{}

// ResolveRole picks the wizard role for the request: the token's "role"
// claim first, then the X-Role-Hint header, then fallback.
func ResolveRole(jwtService jwt.Service, fallback wizard.RoleType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := fallback

			token, claims, err := jwtauth.FromContext(r.Context())
			switch {
			case err == nil && token != nil:
				role, err = jwtService.RoleFromClaims(claims)
				if err != nil {
					response.HandleError(w, err)
					return
				}
			case r.Header.Get(RoleHintHeader) != "":
				role = wizard.ResolveRole(r.Header.Get(RoleHintHeader))
			}

			next.ServeHTTP(w, r.WithContext(WithRole(r.Context(), role)))
		})
	}
}

func WithRole(ctx context.Context, role wizard.RoleType) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFromContext returns the resolved role, admin when none was resolved.
func RoleFromContext(ctx context.Context) wizard.RoleType {
	if role, ok := ctx.Value(roleKey{}).(wizard.RoleType); ok {
		return role
	}
	return wizard.RoleTypeAdmin
}
