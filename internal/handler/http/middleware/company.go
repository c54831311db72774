package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
)

// RequireCompany rejects tokens without a company scope. Every payroll route
// resolves data through the company_id claim, so nothing below this
// middleware has to re-check it.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		companyID, ok := claims["company_id"].(string)
		if !ok || companyID == "" {
			response.Unauthorized(w, "token is not scoped to a company")
			return
		}

		next.ServeHTTP(w, r)
	})
}
