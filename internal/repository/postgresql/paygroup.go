package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/paygroup"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
)

type payGroupRepository struct {
	db *database.DB
}

func NewPayGroupRepository(db *database.DB) paygroup.Repository {
	return &payGroupRepository{db: db}
}

// policyDoc is the JSONB shape holding the versioned policy blocks.
type policyDoc struct {
	StartDayRule paygroup.StartDayRule     `json:"start_day_rule"`
	Overtime     paygroup.OvertimePolicy   `json:"overtime"`
	Earnings     paygroup.EarningsConfig   `json:"earnings"`
	Benefits     paygroup.BenefitsConfig   `json:"benefits"`
	Deductions   paygroup.DeductionsConfig `json:"deductions"`
}

func policiesOf(g paygroup.PayGroup) ([]byte, error) {
	return json.Marshal(policyDoc{
		StartDayRule: g.StartDayRule,
		Overtime:     g.Overtime,
		Earnings:     g.Earnings,
		Benefits:     g.Benefits,
		Deductions:   g.Deductions,
	})
}

func scanPayGroup(row pgx.Row) (paygroup.PayGroup, error) {
	var g paygroup.PayGroup
	var policies []byte
	err := row.Scan(
		&g.ID, &g.CompanyID, &g.Name, &g.Province,
		&g.Frequency, &g.CompensationType, &g.WithholdingMethod,
		&policies, &g.LastPeriodEnd, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return paygroup.PayGroup{}, err
	}
	var doc policyDoc
	if err := json.Unmarshal(policies, &doc); err != nil {
		return paygroup.PayGroup{}, fmt.Errorf("failed to decode pay group policies: %w", err)
	}
	g.StartDayRule = doc.StartDayRule
	g.Overtime = doc.Overtime
	g.Earnings = doc.Earnings
	g.Benefits = doc.Benefits
	g.Deductions = doc.Deductions
	return g, nil
}

const payGroupColumns = `
	id, company_id, name, province, frequency, compensation_type,
	withholding_method, policies, last_period_end, created_at, updated_at
`

func (r *payGroupRepository) Create(ctx context.Context, group paygroup.PayGroup) (paygroup.PayGroup, error) {
	q := r.db.GetQuerier(ctx)

	policies, err := policiesOf(group)
	if err != nil {
		return paygroup.PayGroup{}, fmt.Errorf("failed to encode pay group policies: %w", err)
	}

	query := `
		INSERT INTO pay_groups (
			id, company_id, name, province, frequency, compensation_type,
			withholding_method, policies
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + payGroupColumns

	created, err := scanPayGroup(q.QueryRow(ctx, query,
		group.ID, group.CompanyID, group.Name, group.Province,
		group.Frequency, group.CompensationType, group.WithholdingMethod, policies,
	))
	if err != nil {
		return paygroup.PayGroup{}, fmt.Errorf("failed to create pay group: %w", err)
	}
	return created, nil
}

func (r *payGroupRepository) GetByID(ctx context.Context, id, companyID string) (paygroup.PayGroup, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + payGroupColumns + ` FROM pay_groups WHERE id = $1 AND company_id = $2`

	g, err := scanPayGroup(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return paygroup.PayGroup{}, paygroup.ErrPayGroupNotFound
		}
		return paygroup.PayGroup{}, fmt.Errorf("failed to get pay group: %w", err)
	}
	return g, nil
}

func (r *payGroupRepository) ListByCompany(ctx context.Context, companyID string) ([]paygroup.PayGroup, error) {
	q := r.db.GetQuerier(ctx)

	query := `SELECT ` + payGroupColumns + ` FROM pay_groups WHERE company_id = $1 ORDER BY name`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay groups: %w", err)
	}
	defer rows.Close()

	var groups []paygroup.PayGroup
	for rows.Next() {
		g, err := scanPayGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *payGroupRepository) Update(ctx context.Context, group paygroup.PayGroup) (paygroup.PayGroup, error) {
	q := r.db.GetQuerier(ctx)

	policies, err := policiesOf(group)
	if err != nil {
		return paygroup.PayGroup{}, fmt.Errorf("failed to encode pay group policies: %w", err)
	}

	query := `
		UPDATE pay_groups SET
			name = $3, province = $4, frequency = $5, compensation_type = $6,
			withholding_method = $7, policies = $8, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING ` + payGroupColumns

	updated, err := scanPayGroup(q.QueryRow(ctx, query,
		group.ID, group.CompanyID, group.Name, group.Province,
		group.Frequency, group.CompensationType, group.WithholdingMethod, policies,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return paygroup.PayGroup{}, paygroup.ErrPayGroupNotFound
		}
		return paygroup.PayGroup{}, fmt.Errorf("failed to update pay group: %w", err)
	}
	return updated, nil
}

func (r *payGroupRepository) SetLastPeriodEnd(ctx context.Context, id, companyID string, end time.Time) error {
	q := r.db.GetQuerier(ctx)

	query := `
		UPDATE pay_groups SET last_period_end = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID, end)
	if err != nil {
		return fmt.Errorf("failed to set last period end: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return paygroup.ErrPayGroupNotFound
	}
	return nil
}
