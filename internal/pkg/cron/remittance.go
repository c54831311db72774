package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/maplehr/payroll-backend-go/internal/domain/company"
	remitsvc "github.com/maplehr/payroll-backend-go/internal/service/remittance"
)

// remittanceLookback is how far back the nightly sweep re-aggregates. Wide
// enough to cover a full quarterly period plus late-approved runs.
const remittanceLookback = 120 * 24 * time.Hour

// RemittanceJob re-aggregates remittance obligations for every company so
// runs approved after a period was first built still land in it (or surface
// as needing an amendment).
type RemittanceJob struct {
	companies   company.Repository
	remittances *remitsvc.Service
}

func NewRemittanceJob(companies company.Repository, remittances *remitsvc.Service) *RemittanceJob {
	return &RemittanceJob{companies: companies, remittances: remittances}
}

func (j *RemittanceJob) Run(ctx context.Context) error {
	companies, err := j.companies.List(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	from := now.Add(-remittanceLookback)

	for _, c := range companies {
		if _, err := j.remittances.Aggregate(ctx, c.ID, from, now); err != nil {
			slog.Error("remittance aggregation failed", "company_id", c.ID, "error", err)
			continue
		}
	}
	return nil
}
