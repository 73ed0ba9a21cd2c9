package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/handler/http/response"
	ledgerService "github.com/esyhub/staffpay-backend/internal/service/ledger"
	"github.com/go-chi/chi/v5"
)

type LedgerHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type LedgerHandlerImpl struct {
	ledgerService ledgerService.Service
}

func NewLedgerHandler(service ledgerService.Service) LedgerHandler {
	return &LedgerHandlerImpl{ledgerService: service}
}

// Record implements LedgerHandler.
func (h *LedgerHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req ledger.RecordTransactionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Record transaction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	resp, err := h.ledgerService.Record(r.Context(), req)
	if err != nil {
		slog.Error("Record transaction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Transaction recorded successfully", resp)
}

// Update implements LedgerHandler.
func (h *LedgerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req ledger.RecordTransactionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update transaction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	transactionID := chi.URLParam(r, "transactionID")

	resp, err := h.ledgerService.Update(r.Context(), transactionID, req)
	if err != nil {
		slog.Error("Update transaction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction updated successfully", resp)
}

// Delete implements LedgerHandler.
func (h *LedgerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")

	if err := h.ledgerService.Delete(r.Context(), transactionID); err != nil {
		slog.Error("Delete transaction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Transaction deleted successfully", nil)
}

// List implements LedgerHandler.
func (h *LedgerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	req := ledger.ListFilterRequest{
		Type:      r.URL.Query().Get("type"),
		DateStart: r.URL.Query().Get("date_start"),
		DateEnd:   r.URL.Query().Get("date_end"),
	}

	resp, err := h.ledgerService.List(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("List transactions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Stream implements LedgerHandler. It pushes the employee's matching
// transaction list as a server-sent event on every ledger change, starting
// with the current state.
func (h *LedgerHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	req := ledger.ListFilterRequest{
		Type:      r.URL.Query().Get("type"),
		DateStart: r.URL.Query().Get("date_start"),
		DateEnd:   r.URL.Query().Get("date_end"),
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel, err := h.ledgerService.Subscribe(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("Stream subscribe error", "error", err)
		response.HandleError(w, err)
		return
	}
	defer cancel()

	// All writes happen here; the subscription only ever talks to us
	// through the channel.
	for {
		select {
		case txs, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(txs)
			if err != nil {
				slog.Error("Stream marshal error", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: transactions\ndata: %s\n\n", payload)
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}
