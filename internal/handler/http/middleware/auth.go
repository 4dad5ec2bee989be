package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RejectInvalidToken lets anonymous requests through but answers 401 when a
// bearer token was sent and failed verification.
func RejectInvalidToken(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		_, _, err := jwtauth.FromContext(r.Context())
		if err != nil && !errors.Is(err, jwtauth.ErrNoTokenFound) {
			response.Unauthorized(w, err.Error())
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}

// TokenFromQuery reads the token from the "token" query parameter. Browsers
// cannot set headers on EventSource requests.
func TokenFromQuery(r *http.Request) string {
	return r.URL.Query().Get("token")
}
