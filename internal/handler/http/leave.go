package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	domain "github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/leave"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
	employeesvc "github.com/maplehr/payroll-backend-go/internal/service/employee"
	leavesvc "github.com/maplehr/payroll-backend-go/internal/service/leave"
)

type LeaveHandler struct {
	service   *leavesvc.Service
	employees *employeesvc.Service
}

func NewLeaveHandler(service *leavesvc.Service, employees *employeesvc.Service) *LeaveHandler {
	return &LeaveHandler{service: service, employees: employees}
}

// scopedEmployee resolves the path employee within the caller's company, so
// leave routes can never read another tenant's balances.
func (h *LeaveHandler) scopedEmployee(w http.ResponseWriter, r *http.Request) (domain.Employee, bool) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return domain.Employee{}, false
	}
	emp, err := h.employees.Get(r.Context(), chi.URLParam(r, "id"), cid)
	if err != nil {
		response.HandleError(w, err)
		return domain.Employee{}, false
	}
	return emp, true
}

func yearParam(r *http.Request) (int, error) {
	q := r.URL.Query().Get("year")
	if q == "" {
		return time.Now().Year(), nil
	}
	return strconv.Atoi(q)
}

// ========== VACATION ==========

func (h *LeaveHandler) VacationBalance(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.scopedEmployee(w, r)
	if !ok {
		return
	}

	balance, err := h.service.VacationBalance(r.Context(), emp.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.VacationBalanceResponse{
		EmployeeID: emp.ID,
		Balance:    balance.Balance,
	})
}

func (h *LeaveHandler) VacationHistory(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.scopedEmployee(w, r)
	if !ok {
		return
	}

	now := time.Now()
	from, err := parseDate(r.URL.Query().Get("from"), now.AddDate(-1, 0, 0))
	if err != nil {
		response.BadRequest(w, "from must be yyyy-mm-dd", nil)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"), now)
	if err != nil {
		response.BadRequest(w, "to must be yyyy-mm-dd", nil)
		return
	}

	events, err := h.service.VacationHistory(r.Context(), emp.ID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]leave.VacationEventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, leave.ToVacationEventResponse(e))
	}
	response.Success(w, result)
}

func (h *LeaveHandler) RequestPayout(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.scopedEmployee(w, r)
	if !ok {
		return
	}

	var req leave.PayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.service.RequestPayout(r.Context(), emp.ID, req.Kind, req.Amount, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation payout recorded", leave.VacationBalanceResponse{
		EmployeeID: emp.ID,
		Balance:    balance.Balance,
	})
}

// ========== SICK ==========

func (h *LeaveHandler) SickBalance(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.scopedEmployee(w, r)
	if !ok {
		return
	}

	year, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, "year must be numeric", nil)
		return
	}

	balance, err := h.service.SickBalanceFor(r.Context(), emp.ID, emp.CompanyID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.ToSickBalanceResponse(balance))
}

func (h *LeaveHandler) SickUsage(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.scopedEmployee(w, r)
	if !ok {
		return
	}

	year, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, "year must be numeric", nil)
		return
	}

	usage, err := h.service.SickUsageFor(r.Context(), emp.ID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]leave.SickUsageResponse, 0, len(usage))
	for _, u := range usage {
		result = append(result, leave.ToSickUsageResponse(u))
	}
	response.Success(w, result)
}
