package http

import (
	"encoding/json"
	"net/http"

	"github.com/maplehr/payroll-backend-go/internal/domain/company"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/response"
	companysvc "github.com/maplehr/payroll-backend-go/internal/service/company"
)

type CompanyHandler struct {
	service *companysvc.Service
}

func NewCompanyHandler(service *companysvc.Service) *CompanyHandler {
	return &CompanyHandler{service: service}
}

func (h *CompanyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	c, err := h.service.Get(r.Context(), cid)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, company.ToSettingsResponse(c))
}

func (h *CompanyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	cid, err := companyID(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req company.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	c, err := h.service.UpdateSettings(r.Context(), cid, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, company.ToSettingsResponse(c))
}
