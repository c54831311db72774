package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
	employeesvc "github.com/maplehr/payroll-backend-go/internal/service/employee"
)

type EmployeeHandler struct {
	service *employeesvc.Service
}

func NewEmployeeHandler(service *employeesvc.Service) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	emp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToEmployeeResponse(emp))
}

func (h *EmployeeHandler) ListByPayGroup(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	payGroupID := r.URL.Query().Get("pay_group_id")
	if payGroupID == "" {
		response.BadRequest(w, "pay_group_id is required", nil)
		return
	}

	employees, err := h.service.ListByPayGroup(r.Context(), payGroupID, cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, employee.ToEmployeeResponse(emp))
	}
	response.Success(w, result)
}

// ========== COMPENSATION ==========

func (h *EmployeeHandler) GetCompensation(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	emp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	snapshot, err := h.service.ActiveCompensation(r.Context(), emp.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToCompensationResponse(snapshot))
}

func (h *EmployeeHandler) UpdateCompensation(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	emp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req employee.UpdateCompensationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		response.BadRequest(w, "effective_date must be yyyy-mm-dd", nil)
		return
	}

	snapshot, err := h.service.UpdateCompensation(r.Context(), emp.ID, req.Type, req.Amount, effective)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Compensation updated", employee.ToCompensationResponse(snapshot))
}

// ========== TAX CLAIMS ==========

func (h *EmployeeHandler) GetTaxClaim(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	taxYear, err := strconv.Atoi(r.URL.Query().Get("tax_year"))
	if err != nil {
		response.BadRequest(w, "tax_year is required", nil)
		return
	}

	emp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	claim, err := h.service.EnsureTaxClaim(r.Context(), emp, taxYear, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToTaxClaimResponse(claim))
}

func (h *EmployeeHandler) SetAdditionalClaims(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req employee.SetAdditionalClaimsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	emp, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	claim, err := h.service.SetAdditionalClaims(r.Context(), emp, req.TaxYear, time.Now(), req.FederalAdditional, req.ProvincialAdditional)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, employee.ToTaxClaimResponse(claim))
}
