package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/maplehr/payroll-backend-go/internal/domain/employee"
	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
	leavesvc "github.com/maplehr/payroll-backend-go/internal/service/leave"
	periodsvc "github.com/maplehr/payroll-backend-go/internal/service/period"
	taxrefsvc "github.com/maplehr/payroll-backend-go/internal/service/taxref"
	"github.com/shopspring/decimal"
)

// Service runs the payroll engine: record calculation, recalculation, and
// the run lifecycle. All monetary computation is delegated to the pure
// functions in gross.go and deductions.go; this type wires inputs together.
type Service struct {
	db        *database.DB
	runs      payroll.Repository
	employees employee.Repository
	payGroups paygroup.Repository
	editions  *taxrefsvc.Resolver
	periods   *periodsvc.Service
	leaves    *leavesvc.Service
}

func NewService(
	db *database.DB,
	runs payroll.Repository,
	employees employee.Repository,
	payGroups paygroup.Repository,
	editions *taxrefsvc.Resolver,
	periods *periodsvc.Service,
	leaves *leavesvc.Service,
) *Service {
	return &Service{
		db:        db,
		runs:      runs,
		employees: employees,
		payGroups: payGroups,
		editions:  editions,
		periods:   periods,
		leaves:    leaves,
	}
}

// companyFromContext extracts the tenant from the verified JWT; every engine
// operation is scoped to it.
func companyFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// CreateRun opens a draft run for the pay group's next period and advances
// the group's schedule anchor.
func (s *Service) CreateRun(ctx context.Context, req payroll.CreateRunRequest) (payroll.Run, error) {
	if err := req.Validate(); err != nil {
		return payroll.Run{}, err
	}
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Run{}, err
	}

	pg, err := s.payGroups.GetByID(ctx, req.PayGroupID, companyID)
	if err != nil {
		return payroll.Run{}, err
	}

	p, err := s.periods.ResolveNext(ctx, pg, time.Now().UTC())
	if err != nil {
		return payroll.Run{}, err
	}

	run := payroll.Run{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		PayGroupID:  pg.ID,
		PeriodStart: p.Start,
		PeriodEnd:   p.End,
		PayDate:     p.PayDate,
		TaxYear:     p.PayDate.Year(),
		Status:      payroll.RunDraft,
	}
	created, err := s.runs.CreateRun(ctx, run)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("create run: %w", err)
	}
	if err := s.payGroups.SetLastPeriodEnd(ctx, pg.ID, companyID, p.End); err != nil {
		return payroll.Run{}, fmt.Errorf("advance schedule anchor: %w", err)
	}
	return created, nil
}

// CalculateRecord computes (or re-computes) the record for one employee in a
// draft run from the supplied period input. Calculation is a pure
// re-derivation of the stored input: submitting identical input always
// produces an identical record.
func (s *Service) CalculateRecord(ctx context.Context, runID string, in payroll.PeriodInput) (payroll.Record, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Record{}, err
	}

	run, err := s.runs.GetRun(ctx, runID, companyID)
	if err != nil {
		return payroll.Record{}, err
	}
	if !run.Status.Editable() {
		return payroll.Record{}, payroll.ErrRunNotEditable
	}

	emp, err := s.employees.GetByID(ctx, in.EmployeeID, companyID)
	if err != nil {
		return payroll.Record{}, err
	}

	record, err := s.deriveRecord(ctx, run, emp, in)
	if err != nil {
		return payroll.Record{}, err
	}

	existing, err := s.runs.GetRecordByRunEmployee(ctx, run.ID, emp.ID)
	switch {
	case err == nil:
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.Modified = true
		return s.runs.ReplaceRecord(ctx, record)
	case errors.Is(err, payroll.ErrRecordNotFound):
		return s.runs.CreateRecord(ctx, record)
	default:
		return payroll.Record{}, err
	}
}

// RecalculateRecord re-derives a draft record from its stored input.
func (s *Service) RecalculateRecord(ctx context.Context, recordID string) (payroll.Record, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Record{}, err
	}
	existing, err := s.runs.GetRecord(ctx, recordID, companyID)
	if err != nil {
		return payroll.Record{}, err
	}
	run, err := s.runs.GetRun(ctx, existing.RunID, companyID)
	if err != nil {
		return payroll.Record{}, err
	}
	if !run.Status.Editable() {
		return payroll.Record{}, payroll.ErrRunNotEditable
	}
	emp, err := s.employees.GetByID(ctx, existing.EmployeeID, companyID)
	if err != nil {
		return payroll.Record{}, err
	}

	record, err := s.deriveRecord(ctx, run, emp, existing.Input)
	if err != nil {
		return payroll.Record{}, err
	}
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	record.Modified = existing.Modified
	return s.runs.ReplaceRecord(ctx, record)
}

// deriveRecord is the full single-employee computation: gross pay, leave
// checks, statutory deductions and totals. It writes nothing.
func (s *Service) deriveRecord(ctx context.Context, run payroll.Run, emp employee.Employee, in payroll.PeriodInput) (payroll.Record, error) {
	comp, err := s.employees.GetSnapshotAt(ctx, emp.ID, run.PeriodEnd)
	if err != nil {
		if errors.Is(err, employee.ErrSnapshotNotFound) {
			return payroll.Record{}, payroll.ErrNoCompensation
		}
		return payroll.Record{}, err
	}

	if err := payroll.ValidateInput(in, comp.Type == employee.CompensationHourly); err != nil {
		return payroll.Record{}, err
	}

	pg, err := s.payGroups.GetByID(ctx, run.PayGroupID, run.CompanyID)
	if err != nil {
		return payroll.Record{}, err
	}

	edition, err := s.editions.Resolve(ctx, emp.Province, run.PayDate, run.TaxYear)
	if err != nil {
		return payroll.Record{}, err
	}

	vacationRate := emp.VacationRate
	if vacationRate.IsZero() && !pg.Earnings.VacationRate.IsZero() {
		vacationRate = pg.Earnings.VacationRate
	}

	var sickRate *decimal.Decimal
	if hasPaidSick(in) {
		r, err := s.leaves.SickHourlyRate(ctx, emp, comp, run.PeriodEnd, edition.Sick)
		if err != nil {
			return payroll.Record{}, err
		}
		sickRate = &r
	}

	gross := computeGross(in, grossContext{
		comp:             comp,
		periodsPerYear:   pg.Frequency.PeriodsPerYear(),
		overtime:         pg.Overtime,
		earnings:         pg.Earnings,
		benefits:         pg.Benefits,
		deductions:       pg.Deductions,
		vacationRate:     vacationRate,
		holidayPayExempt: emp.HolidayPayExempt,
		sickHourlyRate:   sickRate,
	})

	// Leave entries must fit the available balances before any money moves.
	if err := s.leaves.CheckPeriodLeave(ctx, emp, run.PeriodEnd, in.Leave, gross.vacationTaken, gross.vacationAccrued); err != nil {
		return payroll.Record{}, err
	}

	claim, err := s.ensureClaim(ctx, emp, run)
	if err != nil {
		return payroll.Record{}, err
	}

	ytd, err := s.runs.YearToDate(ctx, emp.ID, run.TaxYear, run.ID)
	if err != nil {
		return payroll.Record{}, fmt.Errorf("load year-to-date: %w", err)
	}

	if pg.WithholdingMethod == paygroup.WithholdingCumulative && ytd.Periods == 0 && !ytd.RegularTaxable.IsZero() {
		return payroll.Record{}, payroll.ErrCumulativeStateGap
	}

	initialPension, initialSupp, initialIns := emp.InitialYTD.For(run.TaxYear)

	deductions := computeStatutory(statutoryInput{
		edition:              edition,
		periodsPerYear:       pg.Frequency.PeriodsPerYear(),
		method:               pg.WithholdingMethod,
		claim:                claim,
		ytd:                  ytd,
		taxYear:              run.TaxYear,
		initialPension:       initialPension,
		initialSupplementary: initialSupp,
		initialInsurance:     initialIns,
		pensionExempt:        emp.PensionExempt,
		supplementaryExempt:  emp.PensionSupplementaryExempt,
		insuranceExempt:      emp.InsuranceExempt,
		pensionable:          gross.pensionable,
		insurable:            gross.insurable,
		regularTaxable:       gross.regularTaxable,
		bonusIncome:          gross.bonusIncome,
	})
	deductions.Other = gross.other

	record := payroll.Record{
		ID:         uuid.NewString(),
		RunID:      run.ID,
		EmployeeID: emp.ID,
		CompanyID:  run.CompanyID,

		EmployeeName:       emp.FullName,
		Province:           emp.Province,
		CompensationType:   comp.Type,
		CompensationAmount: comp.Amount,
		PayGroupName:       pg.Name,

		Input:      in,
		Earnings:   gross.lines,
		Deductions: deductions,

		RegularTaxable:      gross.regularTaxable,
		BonusIncome:         gross.bonusIncome,
		PensionableEarnings: gross.pensionable,
		InsurableEarnings:   gross.insurable,
		VacationAccrued:     gross.vacationAccrued,
		DaysWorked:          gross.daysWorked,

		YTD: ytd,
	}
	record.RecomputeTotals()
	return record, nil
}

func hasPaidSick(in payroll.PeriodInput) bool {
	for _, entry := range in.Leave {
		if entry.Type == payroll.LeaveSickPaid {
			return true
		}
	}
	return false
}

func (s *Service) ensureClaim(ctx context.Context, emp employee.Employee, run payroll.Run) (employee.TaxClaim, error) {
	claim, err := s.employees.GetTaxClaim(ctx, emp.ID, run.TaxYear)
	if err == nil {
		return claim, nil
	}
	if !errors.Is(err, employee.ErrTaxClaimNotFound) {
		return employee.TaxClaim{}, err
	}
	edition, err := s.editions.Resolve(ctx, emp.Province, run.PayDate, run.TaxYear)
	if err != nil {
		return employee.TaxClaim{}, err
	}
	claim = employee.TaxClaim{
		ID:              uuid.NewString(),
		EmployeeID:      emp.ID,
		TaxYear:         run.TaxYear,
		FederalBasic:    edition.FederalBasicPersonal,
		ProvincialBasic: edition.ProvincialBasicPersonal,
	}
	return s.employees.UpsertTaxClaim(ctx, claim)
}

// GetRecord returns one record scoped to the caller's company.
func (s *Service) GetRecord(ctx context.Context, recordID string) (payroll.Record, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Record{}, err
	}
	return s.runs.GetRecord(ctx, recordID, companyID)
}

// ListRecords returns all records of a run.
func (s *Service) ListRecords(ctx context.Context, runID string) ([]payroll.Record, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.runs.ListRecordsByRun(ctx, runID, companyID)
}
