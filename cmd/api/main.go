package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/maplehr/payroll-backend-go/internal/config"
	appHTTP "github.com/maplehr/payroll-backend-go/internal/handler/http"
	"github.com/maplehr/payroll-backend-go/internal/pkg/cron"
	"github.com/maplehr/payroll-backend-go/internal/pkg/database"
	"github.com/maplehr/payroll-backend-go/internal/pkg/jwt"
	"github.com/maplehr/payroll-backend-go/internal/repository/postgresql"
	companyService "github.com/maplehr/payroll-backend-go/internal/service/company"
	employeeService "github.com/maplehr/payroll-backend-go/internal/service/employee"
	leaveService "github.com/maplehr/payroll-backend-go/internal/service/leave"
	paygroupService "github.com/maplehr/payroll-backend-go/internal/service/paygroup"
	payrollService "github.com/maplehr/payroll-backend-go/internal/service/payroll"
	periodService "github.com/maplehr/payroll-backend-go/internal/service/period"
	remittanceService "github.com/maplehr/payroll-backend-go/internal/service/remittance"
	taxrefService "github.com/maplehr/payroll-backend-go/internal/service/taxref"
	yearendService "github.com/maplehr/payroll-backend-go/internal/service/yearend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	taxrefRepo := postgresql.NewTaxRefRepository(db)
	payGroupRepo := postgresql.NewPayGroupRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	remittanceRepo := postgresql.NewRemittanceRepository(db)
	yearEndRepo := postgresql.NewYearEndRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)

	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	editions := taxrefService.NewResolver(taxrefRepo)
	periods := periodService.NewService(editions)
	leaves := leaveService.NewService(db, leaveRepo, editions, employeeRepo)
	payGroups := paygroupService.NewService(payGroupRepo, periods)
	employees := employeeService.NewService(employeeRepo, editions)
	payrolls := payrollService.NewService(db, payrollRepo, employeeRepo, payGroupRepo, editions, periods, leaves)
	remittances := remittanceService.NewService(db, remittanceRepo, payrollRepo, companyRepo)
	yearEnds := yearendService.NewService(db, yearEndRepo, payrollRepo, remittanceRepo, editions)
	companies := companyService.NewService(companyRepo)

	scheduler := cron.NewScheduler()
	remittanceJob := cron.NewRemittanceJob(companyRepo, remittances)
	scheduler.AddJob("remittance-sweep", cfg.Cron.RemittanceInterval, remittanceJob.Run)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		TaxRef:     appHTTP.NewTaxRefHandler(editions),
		PayGroup:   appHTTP.NewPayGroupHandler(payGroups),
		Employee:   appHTTP.NewEmployeeHandler(employees),
		Payroll:    appHTTP.NewPayrollHandler(payrolls),
		Leave:      appHTTP.NewLeaveHandler(leaves, employees),
		Remittance: appHTTP.NewRemittanceHandler(remittances),
		YearEnd:    appHTTP.NewYearEndHandler(yearEnds),
		Company:    appHTTP.NewCompanyHandler(companies),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	_ = server.Close()
}
