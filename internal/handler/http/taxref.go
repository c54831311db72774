package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
	"github.com/maplehr/payroll-backend-go/internal/pkg/validator"
	taxrefsvc "github.com/maplehr/payroll-backend-go/internal/service/taxref"
	"github.com/shopspring/decimal"
)

// TaxRefHandler exposes read access to published parameter editions.
// Reference data is maintained by an external publishing pipeline; the API
// surface is deliberately read-only.
type TaxRefHandler struct {
	editions *taxrefsvc.Resolver
}

func NewTaxRefHandler(editions *taxrefsvc.Resolver) *TaxRefHandler {
	return &TaxRefHandler{editions: editions}
}

type editionResponse struct {
	ID                      string          `json:"id"`
	Province                string          `json:"province"`
	TaxYear                 int             `json:"tax_year"`
	EffectiveFrom           string          `json:"effective_from"`
	EffectiveTo             string          `json:"effective_to"`
	FederalBasicPersonal    decimal.Decimal `json:"federal_basic_personal"`
	ProvincialBasicPersonal decimal.Decimal `json:"provincial_basic_personal"`
	PayDateMaxDays          int             `json:"pay_date_max_days"`
	DefaultVacationRate     decimal.Decimal `json:"default_vacation_rate"`
}

func toEditionResponse(e taxref.Edition) editionResponse {
	return editionResponse{
		ID:                      e.ID,
		Province:                e.Province,
		TaxYear:                 e.TaxYear,
		EffectiveFrom:           e.EffectiveFrom.Format("2006-01-02"),
		EffectiveTo:             e.EffectiveTo.Format("2006-01-02"),
		FederalBasicPersonal:    e.FederalBasicPersonal,
		ProvincialBasicPersonal: e.ProvincialBasicPersonal,
		PayDateMaxDays:          e.PayDateMaxDays,
		DefaultVacationRate:     e.DefaultVacationRate,
	}
}

func (h *TaxRefHandler) ListEditions(w http.ResponseWriter, r *http.Request) {
	province := strings.ToUpper(r.URL.Query().Get("province"))
	if !validator.IsValidProvince(province) {
		response.BadRequest(w, "province is required and must be a known jurisdiction code", nil)
		return
	}

	taxYear, err := strconv.Atoi(r.URL.Query().Get("tax_year"))
	if err != nil || !validator.IsValidTaxYear(taxYear) {
		response.BadRequest(w, "tax_year is required", nil)
		return
	}

	editions, err := h.editions.Editions(r.Context(), province, taxYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]editionResponse, 0, len(editions))
	for _, e := range editions {
		result = append(result, toEditionResponse(e))
	}
	response.Success(w, result)
}
