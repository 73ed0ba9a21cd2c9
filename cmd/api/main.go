package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/esyhub/staffpay-backend/internal/config"
	appHTTP "github.com/esyhub/staffpay-backend/internal/handler/http"
	"github.com/esyhub/staffpay-backend/internal/pkg/cron"
	"github.com/esyhub/staffpay-backend/internal/pkg/database"
	"github.com/esyhub/staffpay-backend/internal/pkg/feed"
	"github.com/esyhub/staffpay-backend/internal/pkg/jwt"
	"github.com/esyhub/staffpay-backend/internal/repository/postgresql"
	accrualService "github.com/esyhub/staffpay-backend/internal/service/accrual"
	authService "github.com/esyhub/staffpay-backend/internal/service/auth"
	employeeService "github.com/esyhub/staffpay-backend/internal/service/employee"
	hubService "github.com/esyhub/staffpay-backend/internal/service/hub"
	ledgerService "github.com/esyhub/staffpay-backend/internal/service/ledger"
	payoutService "github.com/esyhub/staffpay-backend/internal/service/payout"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	transactionRepo := postgresql.NewTransactionRepository(db)
	hubRepo := postgresql.NewHubRepository(db)

	changes := feed.NewHub()
	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewService(cfg.Admin, jwtSvc)
	txManager := postgresql.NewTxManager(db)
	employeeSvc := employeeService.NewService(employeeRepo, transactionRepo, txManager)
	hubSvc := hubService.NewService(hubRepo)
	ledgerSvc := ledgerService.NewService(transactionRepo, employeeRepo, changes)
	projector := ledgerService.NewProjector(transactionRepo, changes)
	accrualSvc := accrualService.NewService(transactionRepo, employeeRepo, changes)
	payoutSvc := payoutService.NewService(employeeRepo, transactionRepo, payoutService.Options{
		TDSRatePercent: cfg.Payout.TDSRatePercent,
		DeductLoss:     cfg.Payout.DeductLoss,
	})

	scheduler := cron.NewScheduler()
	accrualJobs := cron.NewAccrualJobs(accrualSvc, cfg.Accrual.SweepInterval)
	accrualJobs.RegisterJobs(scheduler)
	// catch-up sweep before serving, so a process that was down over a
	// salary date accrues the missed entries immediately
	scheduler.RunOnce(ctx)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtSvc, appHTTP.Handlers{
		Auth:     appHTTP.NewAuthHandler(authSvc, jwtSvc),
		Employee: appHTTP.NewEmployeeHandler(employeeSvc, ledgerSvc),
		Hub:      appHTTP.NewHubHandler(hubSvc),
		Ledger:   appHTTP.NewLedgerHandler(ledgerSvc),
		Accrual:  appHTTP.NewAccrualHandler(accrualSvc),
		Payout:   appHTTP.NewPayoutHandler(payoutSvc),
		Balance:  appHTTP.NewBalanceHandler(projector),
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("Shutting down...")
	if err := server.Shutdown(context.Background()); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
