package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
	paygroupsvc "github.com/maplehr/payroll-backend-go/internal/service/paygroup"
)

type PayGroupHandler struct {
	service *paygroupsvc.Service
}

func NewPayGroupHandler(service *paygroupsvc.Service) *PayGroupHandler {
	return &PayGroupHandler{service: service}
}

func toPayGroupResponse(g paygroup.PayGroup) paygroup.PayGroupResponse {
	return paygroup.PayGroupResponse{
		ID:                g.ID,
		CompanyID:         g.CompanyID,
		Name:              g.Name,
		Province:          g.Province,
		Frequency:         g.Frequency,
		CompensationType:  g.CompensationType,
		WithholdingMethod: g.WithholdingMethod,
		StartDayRule:      g.StartDayRule,
		Overtime:          g.Overtime,
		Earnings:          g.Earnings,
		Benefits:          g.Benefits,
		Deductions:        g.Deductions,
		PeriodsPerYear:    g.Frequency.PeriodsPerYear(),
	}
}

func (h *PayGroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req paygroup.CreatePayGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	group, err := h.service.Create(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay group created", toPayGroupResponse(group))
}

func (h *PayGroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	group, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toPayGroupResponse(group))
}

func (h *PayGroupHandler) List(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	groups, err := h.service.List(r.Context(), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]paygroup.PayGroupResponse, 0, len(groups))
	for _, g := range groups {
		result = append(result, toPayGroupResponse(g))
	}
	response.Success(w, result)
}

func (h *PayGroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req paygroup.CreatePayGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	group, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toPayGroupResponse(group))
}

// NextPeriod previews the period the next run would cover.
func (h *PayGroupHandler) NextPeriod(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	period, err := h.service.NextPeriod(r.Context(), chi.URLParam(r, "id"), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, paygroup.NextPeriodResponse{
		PeriodStart: period.Start.Format("2006-01-02"),
		PeriodEnd:   period.End.Format("2006-01-02"),
		PayDate:     period.PayDate.Format("2006-01-02"),
	})
}
