package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/esyhub/staffpay-backend/internal/handler/http/response"
	payoutService "github.com/esyhub/staffpay-backend/internal/service/payout"
	"github.com/go-chi/chi/v5"
)

type PayoutHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	ForEmployee(w http.ResponseWriter, r *http.Request)
}

type PayoutHandlerImpl struct {
	payoutService payoutService.Service
}

func NewPayoutHandler(service payoutService.Service) PayoutHandler {
	return &PayoutHandlerImpl{payoutService: service}
}

// Preview implements PayoutHandler.
func (h *PayoutHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req payoutService.PreviewRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Payout preview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	summary, err := h.payoutService.Preview(r.Context(), req)
	if err != nil {
		slog.Error("Payout preview service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// ForEmployee implements PayoutHandler.
func (h *PayoutHandlerImpl) ForEmployee(w http.ResponseWriter, r *http.Request) {
	var req payoutService.ForEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Payout for employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	employeeID := chi.URLParam(r, "employeeID")

	summary, err := h.payoutService.ForEmployee(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("Payout for employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
