package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/remittance"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
	remitsvc "github.com/maplehr/payroll-backend-go/internal/service/remittance"
)

type RemittanceHandler struct {
	service *remitsvc.Service
}

func NewRemittanceHandler(service *remitsvc.Service) *RemittanceHandler {
	return &RemittanceHandler{service: service}
}

func obligationList(obligations []remittance.Obligation) []remittance.ObligationResponse {
	result := make([]remittance.ObligationResponse, 0, len(obligations))
	for _, o := range obligations {
		result = append(result, remittance.ToObligationResponse(o))
	}
	return result
}

// Aggregate rebuilds obligations for the window from approved runs.
func (h *RemittanceHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	now := time.Now()
	from, err := parseDate(r.URL.Query().Get("from"), now.AddDate(0, -3, 0))
	if err != nil {
		response.BadRequest(w, "from must be yyyy-mm-dd", nil)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"), now)
	if err != nil {
		response.BadRequest(w, "to must be yyyy-mm-dd", nil)
		return
	}

	obligations, err := h.service.Aggregate(r.Context(), cid, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Remittance obligations aggregated", obligationList(obligations))
}

func (h *RemittanceHandler) List(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	now := time.Now()
	from, err := parseDate(r.URL.Query().Get("from"), now.AddDate(-1, 0, 0))
	if err != nil {
		response.BadRequest(w, "from must be yyyy-mm-dd", nil)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"), now.AddDate(0, 1, 0))
	if err != nil {
		response.BadRequest(w, "to must be yyyy-mm-dd", nil)
		return
	}

	obligations, err := h.service.List(r.Context(), cid, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, obligationList(obligations))
}

type payObligationRequest struct {
	PaidAt string `json:"paid_at"` // yyyy-mm-dd, defaults to today
}

func (h *RemittanceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payObligationRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	paidAt, err := parseDate(req.PaidAt, time.Now())
	if err != nil {
		response.BadRequest(w, "paid_at must be yyyy-mm-dd", nil)
		return
	}

	obligation, err := h.service.Pay(r.Context(), cid, chi.URLParam(r, "id"), paidAt)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Remittance recorded", remittance.ToObligationResponse(obligation))
}
