package http

import (
	"net/http"
	"strconv"

	"github.com/maplehr/payroll-backend-go/internal/domain/yearend"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
	yearendsvc "github.com/maplehr/payroll-backend-go/internal/service/yearend"
)

type YearEndHandler struct {
	service *yearendsvc.Service
}

func NewYearEndHandler(service *yearendsvc.Service) *YearEndHandler {
	return &YearEndHandler{service: service}
}

func taxYearParam(r *http.Request) (int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("tax_year"))
	return year, err == nil
}

func slipList(slips []yearend.Slip) []yearend.SlipResponse {
	result := make([]yearend.SlipResponse, 0, len(slips))
	for _, s := range slips {
		result = append(result, yearend.ToSlipResponse(s))
	}
	return result
}

// GenerateSlips files slips for the year. Re-filing after corrections
// appends amendments rather than overwriting.
func (h *YearEndHandler) GenerateSlips(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, ok := taxYearParam(r)
	if !ok {
		response.BadRequest(w, "tax_year is required", nil)
		return
	}

	slips, err := h.service.GenerateSlips(r.Context(), cid, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Year-end slips generated", slipList(slips))
}

func (h *YearEndHandler) Slips(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, ok := taxYearParam(r)
	if !ok {
		response.BadRequest(w, "tax_year is required", nil)
		return
	}

	slips, err := h.service.Slips(r.Context(), cid, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slipList(slips))
}

func (h *YearEndHandler) BuildSummary(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, ok := taxYearParam(r)
	if !ok {
		response.BadRequest(w, "tax_year is required", nil)
		return
	}

	summary, err := h.service.BuildSummary(r.Context(), cid, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Year-end summary built", yearend.ToSummaryResponse(summary))
}

func (h *YearEndHandler) Summary(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	year, ok := taxYearParam(r)
	if !ok {
		response.BadRequest(w, "tax_year is required", nil)
		return
	}

	summary, err := h.service.Summary(r.Context(), cid, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, yearend.ToSummaryResponse(summary))
}
