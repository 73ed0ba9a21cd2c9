package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/esyhub/staffpay-backend/internal/handler/http/response"
	ledgerService "github.com/esyhub/staffpay-backend/internal/service/ledger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type BalanceHandler interface {
	SalarySummary(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type BalanceHandlerImpl struct {
	projector ledgerService.Projector
}

func NewBalanceHandler(projector ledgerService.Projector) BalanceHandler {
	return &BalanceHandlerImpl{projector: projector}
}

type salarySummaryResponse struct {
	UnpaidSalary decimal.Decimal `json:"unpaid_salary"`
	PaidSalary   decimal.Decimal `json:"paid_salary"`
}

// SalarySummary implements BalanceHandler.
func (h *BalanceHandlerImpl) SalarySummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	unpaid, err := h.projector.UnpaidSalary(r.Context(), employeeID)
	if err != nil {
		slog.Error("SalarySummary unpaid error", "error", err)
		response.HandleError(w, err)
		return
	}

	paid, err := h.projector.PaidSalary(r.Context(), employeeID)
	if err != nil {
		slog.Error("SalarySummary paid error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, salarySummaryResponse{UnpaidSalary: unpaid, PaidSalary: paid})
}

// Stream implements BalanceHandler. It pushes the unpaid and paid salary
// totals as server-sent events whenever the employee's ledger changes.
func (h *BalanceHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	employeeID := chi.URLParam(r, "employeeID")

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	unpaid, cancelUnpaid, err := h.projector.WatchUnpaidSalary(r.Context(), employeeID)
	if err != nil {
		slog.Error("Balance stream subscribe error", "error", err)
		response.HandleError(w, err)
		return
	}
	defer cancelUnpaid()

	paid, cancelPaid, err := h.projector.WatchPaidSalary(r.Context(), employeeID)
	if err != nil {
		slog.Error("Balance stream subscribe error", "error", err)
		response.HandleError(w, err)
		return
	}
	defer cancelPaid()

	send := func(event string, total decimal.Decimal) {
		payload, err := json.Marshal(map[string]decimal.Decimal{"total": total})
		if err != nil {
			slog.Error("Balance stream marshal error", "error", err)
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
		flusher.Flush()
	}

	// Both watchers deliver over their channels; this loop is the only
	// writer on the connection.
	for {
		select {
		case total, ok := <-unpaid:
			if !ok {
				return
			}
			send("unpaid_salary", total)
		case total, ok := <-paid:
			if !ok {
				return
			}
			send("paid_salary", total)
		case <-r.Context().Done():
			return
		}
	}
}
