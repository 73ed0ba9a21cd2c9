package http

import (
	"log/slog"
	"os"

	"github.com/esyhub/staffpay-backend/internal/config"
	"github.com/esyhub/staffpay-backend/internal/handler/http/middleware"
	"github.com/esyhub/staffpay-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth     AuthHandler
	Employee EmployeeHandler
	Hub      HubHandler
	Ledger   LedgerHandler
	Accrual  AccrualHandler
	Payout   PayoutHandler
	Balance  BalanceHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "staffpay-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AdminSession)

			r.Route("/hubs", func(r chi.Router) {
				r.Get("/", h.Hub.List)
				r.Post("/", h.Hub.Create)
				r.Route("/{hubID}", func(r chi.Router) {
					r.Get("/", h.Hub.GetByID)
					r.Put("/", h.Hub.Update)
					r.Delete("/", h.Hub.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)

				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", h.Employee.GetByID)
					r.Put("/", h.Employee.Update)
					r.Delete("/", h.Employee.Delete)
					r.Post("/recompute-balance", h.Employee.RecomputeBalance)

					r.Route("/transactions", func(r chi.Router) {
						r.Get("/", h.Ledger.List)
						r.Post("/", h.Ledger.Record)
						r.Get("/stream", h.Ledger.Stream)
						r.Route("/{transactionID}", func(r chi.Router) {
							r.Put("/", h.Ledger.Update)
							r.Delete("/", h.Ledger.Delete)
						})
					})

					r.Route("/salary", func(r chi.Router) {
						r.Get("/summary", h.Balance.SalarySummary)
						r.Get("/stream", h.Balance.Stream)
						r.Post("/reconcile-duplicates", h.Accrual.ReconcileDuplicates)
					})

					r.Post("/payout", h.Payout.ForEmployee)
				})
			})

			r.Route("/accrual", func(r chi.Router) {
				r.Post("/sweep", h.Accrual.TriggerSweep)
			})

			r.Put("/transactions/{transactionID}/paid", h.Accrual.MarkSalaryPaid)

			r.Post("/payout/preview", h.Payout.Preview)
		})
	})
	return r
}
