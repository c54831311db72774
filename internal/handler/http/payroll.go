package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
	payrollsvc "github.com/maplehr/payroll-backend-go/internal/service/payroll"
)

type PayrollHandler struct {
	service *payrollsvc.Service
}

func NewPayrollHandler(service *payrollsvc.Service) *PayrollHandler {
	return &PayrollHandler{service: service}
}

// ========== RUNS ==========

func (h *PayrollHandler) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	run, err := h.service.CreateRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run created", payroll.ToRunResponse(run))
}

func (h *PayrollHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToRunResponse(run))
}

func (h *PayrollHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.service.ListRuns(r.Context(), r.URL.Query().Get("pay_group_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		result = append(result, payroll.ToRunResponse(run))
	}
	response.Success(w, result)
}

func (h *PayrollHandler) CalculateRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.CalculateRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run calculated", payroll.ToRunResponse(run))
}

func (h *PayrollHandler) ReopenRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.ReopenRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run reopened", payroll.ToRunResponse(run))
}

func (h *PayrollHandler) ApproveRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.ApproveRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run approved", payroll.ToRunResponse(run))
}

func (h *PayrollHandler) MarkRunPaid(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.MarkRunPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run marked paid", payroll.ToRunResponse(run))
}

func (h *PayrollHandler) CancelRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.service.CancelRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll run cancelled", payroll.ToRunResponse(run))
}

// ========== RECORDS ==========

func (h *PayrollHandler) CalculateRecord(w http.ResponseWriter, r *http.Request) {
	var in payroll.PeriodInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	rec, err := h.service.CalculateRecord(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToRecordResponse(rec))
}

func (h *PayrollHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListRecords(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, payroll.ToRecordResponse(rec))
	}
	response.Success(w, result)
}

func (h *PayrollHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.GetRecord(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToRecordResponse(rec))
}

func (h *PayrollHandler) RecalculateRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.RecalculateRecord(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToRecordResponse(rec))
}
