package middleware

import (
	"net/http"

	"github.com/esyhub/staffpay-backend/internal/domain/auth"
	"github.com/esyhub/staffpay-backend/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AdminSession gates every payroll route behind the admin's bearer token.
// Refresh tokens only ever travel through the auth cookie, so a refresh
// token presented as a bearer is turned away by its type claim.
func AdminSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if kind, ok := claims["type"].(string); !ok || kind != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if username, ok := claims["username"].(string); !ok || username == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
