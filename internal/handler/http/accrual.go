package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/handler/http/response"
	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
	accrualService "github.com/esyhub/staffpay-backend/internal/service/accrual"
	"github.com/go-chi/chi/v5"
)

type AccrualHandler interface {
	TriggerSweep(w http.ResponseWriter, r *http.Request)
	MarkSalaryPaid(w http.ResponseWriter, r *http.Request)
	ReconcileDuplicates(w http.ResponseWriter, r *http.Request)
}

type AccrualHandlerImpl struct {
	accrualService accrualService.Service
}

func NewAccrualHandler(service accrualService.Service) AccrualHandler {
	return &AccrualHandlerImpl{accrualService: service}
}

// TriggerSweep implements AccrualHandler. Runs the salary accrual sweep on
// demand, as of today or an explicit ?as_of=YYYY-MM-DD.
func (h *AccrualHandlerImpl) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if asOfParam := r.URL.Query().Get("as_of"); asOfParam != "" {
		parsed, ok := validator.IsValidDate(asOfParam)
		if !ok {
			response.BadRequest(w, "as_of must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		asOf = parsed
	}

	result, err := h.accrualService.EnsureMonthlyEntries(r.Context(), asOf)
	if err != nil {
		// partial progress: report what happened alongside the error
		slog.Error("Accrual sweep finished with errors", "failed", result.Failed, "error", err)
		response.SuccessWithMessage(w, "Sweep completed with errors", result)
		return
	}

	response.SuccessWithMessage(w, "Sweep completed", result)
}

// MarkSalaryPaid implements AccrualHandler.
func (h *AccrualHandlerImpl) MarkSalaryPaid(w http.ResponseWriter, r *http.Request) {
	var req ledger.MarkPaidRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkSalaryPaid decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	transactionID := chi.URLParam(r, "transactionID")

	resp, err := h.accrualService.MarkSalaryPaid(r.Context(), transactionID, req)
	if err != nil {
		slog.Error("MarkSalaryPaid service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary payment status updated", resp)
}

// ReconcileDuplicates implements AccrualHandler.
func (h *AccrualHandlerImpl) ReconcileDuplicates(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	removed, err := h.accrualService.ReconcileDuplicates(r.Context(), employeeID)
	if err != nil {
		slog.Error("ReconcileDuplicates service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Duplicate salary entries reconciled", map[string]int{"removed": removed})
}
