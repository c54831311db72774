package payroll

import (
	"context"
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// calculateWorkers bounds the per-employee fan-out during run calculation.
const calculateWorkers = 8

func (s *Service) GetRun(ctx context.Context, runID string) (payroll.Run, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Run{}, err
	}
	return s.runs.GetRun(ctx, runID, companyID)
}

func (s *Service) ListRuns(ctx context.Context, payGroupID string) ([]payroll.Run, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.runs.ListRuns(ctx, companyID, payGroupID)
}

// CalculateRun re-derives every record of a draft run from its stored input,
// fanning out across employees. All records must succeed before any total is
// written; a single failure returns the run to draft untouched.
func (s *Service) CalculateRun(ctx context.Context, runID string) (payroll.Run, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Run{}, err
	}
	run, err := s.runs.GetRun(ctx, runID, companyID)
	if err != nil {
		return payroll.Run{}, err
	}
	run, err = s.transition(ctx, run, payroll.RunCalculating)
	if err != nil {
		return payroll.Run{}, err
	}

	records, err := s.runs.ListRecordsByRun(ctx, run.ID, companyID)
	if err != nil {
		s.revertToDraft(ctx, run)
		return payroll.Run{}, err
	}
	if len(records) == 0 {
		s.revertToDraft(ctx, run)
		return payroll.Run{}, payroll.ErrRunEmpty
	}

	results := make([]payroll.Record, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(calculateWorkers)
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			emp, err := s.employees.GetByID(gctx, rec.EmployeeID, companyID)
			if err != nil {
				return err
			}
			derived, err := s.deriveRecord(gctx, run, emp, rec.Input)
			if err != nil {
				return err
			}
			derived.ID = rec.ID
			derived.CreatedAt = rec.CreatedAt
			derived.Modified = rec.Modified
			results[i] = derived
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.revertToDraft(ctx, run)
		return payroll.Run{}, err
	}

	// Barrier passed: persist records and totals together.
	run.TotalGross = decimal.Zero
	run.TotalDeductions = decimal.Zero
	run.TotalNet = decimal.Zero
	run.TotalEmployerCost = decimal.Zero
	err = s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, rec := range results {
			if _, err := s.runs.ReplaceRecord(txCtx, rec); err != nil {
				return err
			}
			run.TotalGross = run.TotalGross.Add(rec.GrossPay)
			run.TotalDeductions = run.TotalDeductions.Add(rec.TotalDeductions)
			run.TotalNet = run.TotalNet.Add(rec.NetPay)
			run.TotalEmployerCost = run.TotalEmployerCost.Add(rec.EmployerCost)
		}
		run.Status = payroll.RunPendingApproval
		run, err = s.runs.UpdateRunStatus(txCtx, run)
		return err
	})
	if err != nil {
		s.revertToDraft(ctx, run)
		return payroll.Run{}, err
	}
	return run, nil
}

// ReopenRun returns a run awaiting approval to draft so inputs can change.
func (s *Service) ReopenRun(ctx context.Context, runID string) (payroll.Run, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Run{}, err
	}
	run, err := s.runs.GetRun(ctx, runID, companyID)
	if err != nil {
		return payroll.Run{}, err
	}
	return s.transition(ctx, run, payroll.RunDraft)
}

// ApproveRun freezes the run's records and posts the leave movement each
// record carries to the employee ledgers, inside one transaction.
func (s *Service) ApproveRun(ctx context.Context, runID string) (payroll.Run, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Run{}, err
	}
	run, err := s.runs.GetRun(ctx, runID, companyID)
	if err != nil {
		return payroll.Run{}, err
	}
	if run.Status != payroll.RunPendingApproval {
		return payroll.Run{}, payroll.ErrRunNotApprovable
	}
	records, err := s.runs.ListRecordsByRun(ctx, run.ID, companyID)
	if err != nil {
		return payroll.Run{}, err
	}

	err = s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, rec := range records {
			if err := s.leaves.PostApprovedRecord(txCtx, run, rec); err != nil {
				return err
			}
		}
		now := time.Now().UTC()
		run.Status = payroll.RunApproved
		run.ApprovedAt = &now
		run, err = s.runs.UpdateRunStatus(txCtx, run)
		return err
	})
	if err != nil {
		return payroll.Run{}, err
	}
	return run, nil
}

// MarkRunPaid records that the money left the account.
func (s *Service) MarkRunPaid(ctx context.Context, runID string) (payroll.Run, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Run{}, err
	}
	run, err := s.runs.GetRun(ctx, runID, companyID)
	if err != nil {
		return payroll.Run{}, err
	}
	if !run.Status.CanTransition(payroll.RunPaid) {
		return payroll.Run{}, payroll.ErrInvalidTransition
	}
	now := time.Now().UTC()
	run.Status = payroll.RunPaid
	run.PaidAt = &now
	return s.runs.UpdateRunStatus(ctx, run)
}

// CancelRun voids an unpaid run. Approved runs roll their posted leave
// movement back before cancelling.
func (s *Service) CancelRun(ctx context.Context, runID string) (payroll.Run, error) {
	companyID, err := companyFromContext(ctx)
	if err != nil {
		return payroll.Run{}, err
	}
	run, err := s.runs.GetRun(ctx, runID, companyID)
	if err != nil {
		return payroll.Run{}, err
	}
	if !run.Status.CanTransition(payroll.RunCancelled) {
		return payroll.Run{}, payroll.ErrInvalidTransition
	}

	err = s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		if run.Status == payroll.RunApproved {
			records, err := s.runs.ListRecordsByRun(txCtx, run.ID, companyID)
			if err != nil {
				return err
			}
			for _, rec := range records {
				if err := s.leaves.ReverseApprovedRecord(txCtx, run, rec); err != nil {
					return err
				}
			}
		}
		run.Status = payroll.RunCancelled
		run, err = s.runs.UpdateRunStatus(txCtx, run)
		return err
	})
	if err != nil {
		return payroll.Run{}, err
	}
	return run, nil
}

func (s *Service) transition(ctx context.Context, run payroll.Run, to payroll.RunStatus) (payroll.Run, error) {
	if !run.Status.CanTransition(to) {
		return payroll.Run{}, payroll.ErrInvalidTransition
	}
	run.Status = to
	return s.runs.UpdateRunStatus(ctx, run)
}

// revertToDraft is best effort cleanup after a failed calculation; the
// original error is what the caller reports.
func (s *Service) revertToDraft(ctx context.Context, run payroll.Run) {
	run.Status = payroll.RunDraft
	_, _ = s.runs.UpdateRunStatus(ctx, run)
}
