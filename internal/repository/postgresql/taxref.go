package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/maplehr/payroll-backend-go/internal/domain/taxref"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
)

type taxRefRepository struct {
	db *database.DB
}

func NewTaxRefRepository(db *database.DB) taxref.Repository {
	return &taxRefRepository{db: db}
}

// Editions are immutable reference data, so the row keeps the searchable
// keys as columns and the full parameter set as one JSONB document.
func (r *taxRefRepository) GetEdition(ctx context.Context, province string, payDate time.Time) (taxref.Edition, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT parameters
		FROM tax_editions
		WHERE province = $1
		  AND effective_from <= $2
		  AND (effective_to IS NULL OR effective_to > $2)
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var raw []byte
	err := q.QueryRow(ctx, query, province, payDate).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return taxref.Edition{}, taxref.ErrEditionNotFound
		}
		return taxref.Edition{}, fmt.Errorf("failed to get tax edition: %w", err)
	}

	var e taxref.Edition
	if err := json.Unmarshal(raw, &e); err != nil {
		return taxref.Edition{}, fmt.Errorf("failed to decode tax edition: %w", err)
	}
	return e, nil
}

func (r *taxRefRepository) ListEditions(ctx context.Context, province string, taxYear int) ([]taxref.Edition, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT parameters
		FROM tax_editions
		WHERE province = $1 AND tax_year = $2
		ORDER BY effective_from
	`

	rows, err := q.Query(ctx, query, province, taxYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax editions: %w", err)
	}
	defer rows.Close()

	var editions []taxref.Edition
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan tax edition: %w", err)
		}
		var e taxref.Edition
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("failed to decode tax edition: %w", err)
		}
		editions = append(editions, e)
	}
	return editions, rows.Err()
}
