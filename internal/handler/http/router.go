package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/maplehr/payroll-backend-go/internal/handler/http/middleware"
	"github.com/maplehr/payroll-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	TaxRef     *TaxRefHandler
	PayGroup   *PayGroupHandler
	Employee   *EmployeeHandler
	Payroll    *PayrollHandler
	Leave      *LeaveHandler
	Remittance *RemittanceHandler
	YearEnd    *YearEndHandler
	Company    *CompanyHandler
}

func NewRouter(jwtService *jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "maplehr-payroll"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.RequireCompany)

			r.Route("/tax-editions", func(r chi.Router) {
				r.Get("/", h.TaxRef.ListEditions)
			})

			r.Route("/company/settings", func(r chi.Router) {
				r.Get("/", h.Company.GetSettings)
				r.Put("/", h.Company.UpdateSettings)
			})

			r.Route("/pay-groups", func(r chi.Router) {
				r.Post("/", h.PayGroup.Create)
				r.Get("/", h.PayGroup.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.PayGroup.Get)
					r.Put("/", h.PayGroup.Update)
					r.Get("/next-period", h.PayGroup.NextPeriod)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListByPayGroup)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.Get)
					r.Get("/compensation", h.Employee.GetCompensation)
					r.Put("/compensation", h.Employee.UpdateCompensation)
					r.Get("/tax-claim", h.Employee.GetTaxClaim)
					r.Put("/tax-claim", h.Employee.SetAdditionalClaims)

					r.Get("/vacation", h.Leave.VacationBalance)
					r.Get("/vacation/history", h.Leave.VacationHistory)
					r.Post("/vacation/payouts", h.Leave.RequestPayout)
					r.Get("/sick", h.Leave.SickBalance)
					r.Get("/sick/usage", h.Leave.SickUsage)
				})
			})

			r.Route("/payroll-runs", func(r chi.Router) {
				r.Post("/", h.Payroll.CreateRun)
				r.Get("/", h.Payroll.ListRuns)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Payroll.GetRun)
					r.Post("/records", h.Payroll.CalculateRecord)
					r.Get("/records", h.Payroll.ListRecords)
					r.Post("/calculate", h.Payroll.CalculateRun)
					r.Post("/reopen", h.Payroll.ReopenRun)
					r.Post("/approve", h.Payroll.ApproveRun)
					r.Post("/pay", h.Payroll.MarkRunPaid)
					r.Post("/cancel", h.Payroll.CancelRun)
				})
			})

			r.Route("/payroll-records/{recordID}", func(r chi.Router) {
				r.Get("/", h.Payroll.GetRecord)
				r.Post("/recalculate", h.Payroll.RecalculateRecord)
			})

			r.Route("/remittances", func(r chi.Router) {
				r.Get("/", h.Remittance.List)
				r.Post("/aggregate", h.Remittance.Aggregate)
				r.Post("/{id}/pay", h.Remittance.Pay)
			})

			r.Route("/year-end", func(r chi.Router) {
				r.Get("/slips", h.YearEnd.Slips)
				r.Post("/slips", h.YearEnd.GenerateSlips)
				r.Get("/summary", h.YearEnd.Summary)
				r.Post("/summary", h.YearEnd.BuildSummary)
			})
		})
	})
	return r
}
