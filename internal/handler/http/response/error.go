package response

import (
	"errors"
	"net/http"

	"github.com/maplehr/payroll-backend-go/internal/domain/company"
	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/leave"
	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/domain/remittance"
	"github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/maplehr/payroll-backend-go/internal/domain/yearend"
	"github.com/maplehr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Tax reference
	case errors.Is(err, taxref.ErrEditionNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, taxref.ErrUnknownProvince):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, taxref.ErrEditionConflict):
		Conflict(w, err.Error())

	// Pay groups
	case errors.Is(err, paygroup.ErrPayGroupNotFound):
		NotFound(w, "Pay group not found")
	case errors.Is(err, paygroup.ErrIncompatibleStartRule),
		errors.Is(err, paygroup.ErrUnsupportedFrequency),
		errors.Is(err, paygroup.ErrUnsupportedMethod),
		errors.Is(err, paygroup.ErrInvalidConfigBlock):
		BadRequest(w, err.Error(), nil)

	// Employees
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrSnapshotNotFound),
		errors.Is(err, employee.ErrTaxClaimNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, employee.ErrSnapshotConflict),
		errors.Is(err, employee.ErrSnapshotOutOfOrder):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrInitialYTDYearMismatch):
		BadRequest(w, err.Error(), nil)

	// Payroll runs and records
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrRecordExists):
		Conflict(w, "Employee already has a record in this run")
	case errors.Is(err, payroll.ErrRunNotEditable),
		errors.Is(err, payroll.ErrInvalidTransition),
		errors.Is(err, payroll.ErrRunNotApprovable):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrMissingHours),
		errors.Is(err, payroll.ErrNoCompensation),
		errors.Is(err, payroll.ErrCumulativeStateGap),
		errors.Is(err, payroll.ErrRunEmpty):
		BadRequest(w, err.Error(), nil)

	// Leave
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientVacation),
		errors.Is(err, leave.ErrInsufficientSick),
		errors.Is(err, leave.ErrNotYetEligible):
		BadRequest(w, err.Error(), nil)

	// Remittance
	case errors.Is(err, remittance.ErrObligationNotFound):
		NotFound(w, "Remittance obligation not found")
	case errors.Is(err, remittance.ErrAlreadyPaid):
		Conflict(w, err.Error())
	case errors.Is(err, remittance.ErrUnknownFrequency):
		BadRequest(w, err.Error(), nil)

	// Year-end
	case errors.Is(err, yearend.ErrSlipNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, yearend.ErrNothingToFile):
		BadRequest(w, err.Error(), nil)

	// Company
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
