package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/remittance"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
)

type remittanceRepository struct {
	db *database.DB
}

func NewRemittanceRepository(db *database.DB) remittance.Repository {
	return &remittanceRepository{db: db}
}

const obligationColumns = `
	id, company_id, frequency, period_start, period_end, due_date,
	pension, insurance, tax, total, status, paid_at, penalty, run_ids,
	created_at, updated_at
`

func scanObligation(row pgx.Row) (remittance.Obligation, error) {
	var ob remittance.Obligation
	err := row.Scan(
		&ob.ID, &ob.CompanyID, &ob.Frequency,
		&ob.PeriodStart, &ob.PeriodEnd, &ob.DueDate,
		&ob.Pension, &ob.Insurance, &ob.Tax, &ob.Total,
		&ob.Status, &ob.PaidAt, &ob.Penalty, &ob.RunIDs,
		&ob.CreatedAt, &ob.UpdatedAt,
	)
	return ob, err
}

func (r *remittanceRepository) Upsert(ctx context.Context, obligation remittance.Obligation) (remittance.Obligation, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO remittance_obligations (
			id, company_id, frequency, period_start, period_end, due_date,
			pension, insurance, tax, total, status, run_ids
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (company_id, frequency, period_start) DO UPDATE SET
			period_end = EXCLUDED.period_end,
			due_date = EXCLUDED.due_date,
			pension = EXCLUDED.pension,
			insurance = EXCLUDED.insurance,
			tax = EXCLUDED.tax,
			total = EXCLUDED.total,
			run_ids = EXCLUDED.run_ids,
			updated_at = NOW()
		RETURNING ` + obligationColumns

	saved, err := scanObligation(q.QueryRow(ctx, query,
		obligation.ID, obligation.CompanyID, obligation.Frequency,
		obligation.PeriodStart, obligation.PeriodEnd, obligation.DueDate,
		obligation.Pension, obligation.Insurance, obligation.Tax, obligation.Total,
		obligation.Status, obligation.RunIDs,
	))
	if err != nil {
		return remittance.Obligation{}, fmt.Errorf("failed to upsert remittance obligation: %w", err)
	}
	return saved, nil
}

func (r *remittanceRepository) GetByID(ctx context.Context, id, companyID string) (remittance.Obligation, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + obligationColumns + ` FROM remittance_obligations WHERE id = $1 AND company_id = $2`

	ob, err := scanObligation(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return remittance.Obligation{}, remittance.ErrObligationNotFound
		}
		return remittance.Obligation{}, fmt.Errorf("failed to get remittance obligation: %w", err)
	}
	return ob, nil
}

func (r *remittanceRepository) GetByPeriod(ctx context.Context, companyID string, frequency remittance.Frequency, periodStart time.Time) (remittance.Obligation, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + obligationColumns + `
		FROM remittance_obligations
		WHERE company_id = $1 AND frequency = $2 AND period_start = $3
	`

	ob, err := scanObligation(q.QueryRow(ctx, query, companyID, frequency, periodStart))
	if err != nil {
		if err == pgx.ErrNoRows {
			return remittance.Obligation{}, remittance.ErrObligationNotFound
		}
		return remittance.Obligation{}, fmt.Errorf("failed to get remittance obligation: %w", err)
	}
	return ob, nil
}

func (r *remittanceRepository) ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]remittance.Obligation, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT ` + obligationColumns + `
		FROM remittance_obligations
		WHERE company_id = $1 AND period_start >= $2 AND period_start <= $3
		ORDER BY period_start
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list remittance obligations: %w", err)
	}
	defer rows.Close()

	var obligations []remittance.Obligation
	for rows.Next() {
		ob, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan remittance obligation: %w", err)
		}
		obligations = append(obligations, ob)
	}
	return obligations, rows.Err()
}

func (r *remittanceRepository) MarkPaid(ctx context.Context, obligation remittance.Obligation) error {
	q := r.db.GetQuerier(ctx)

	query := `
		UPDATE remittance_obligations SET
			status = $3, paid_at = $4, penalty = $5, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		obligation.ID, obligation.CompanyID,
		obligation.Status, obligation.PaidAt, obligation.Penalty,
	)
	if err != nil {
		return fmt.Errorf("failed to mark remittance obligation paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return remittance.ErrObligationNotFound
	}
	return nil
}
