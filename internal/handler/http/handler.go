package http

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/company"
)

// companyID extracts the tenant scope from the verified token. The
// RequireCompany middleware has already rejected unscoped tokens, so a
// missing claim here means a route was mounted outside the guarded group.
func companyID(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}
	id, ok := claims["company_id"].(string)
	if !ok || id == "" {
		return "", company.ErrCompanyNotFound
	}
	return id, nil
}

// parseDate reads a yyyy-mm-dd query value, falling back when absent.
func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.Parse("2006-01-02", value)
}
