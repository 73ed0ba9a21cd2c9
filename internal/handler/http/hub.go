package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/esyhub/staffpay-backend/internal/domain/hub"
	"github.com/esyhub/staffpay-backend/internal/handler/http/response"
	hubService "github.com/esyhub/staffpay-backend/internal/service/hub"
	"github.com/go-chi/chi/v5"
)

type HubHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type HubHandlerImpl struct {
	hubService hubService.Service
}

func NewHubHandler(service hubService.Service) HubHandler {
	return &HubHandlerImpl{hubService: service}
}

// Create implements HubHandler.
func (h *HubHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req hub.CreateHubRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create hub decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.hubService.CreateHub(r.Context(), req)
	if err != nil {
		slog.Error("Create hub service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Hub created successfully", resp)
}

// GetByID implements HubHandler.
func (h *HubHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "hubID")

	resp, err := h.hubService.GetHub(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements HubHandler.
func (h *HubHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.hubService.ListHubs(r.Context())
	if err != nil {
		slog.Error("List hubs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Update implements HubHandler.
func (h *HubHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req hub.UpdateHubRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update hub decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "hubID")

	resp, err := h.hubService.UpdateHub(r.Context(), req)
	if err != nil {
		slog.Error("Update hub service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Hub updated successfully", resp)
}

// Delete implements HubHandler.
func (h *HubHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "hubID")

	if err := h.hubService.DeleteHub(r.Context(), id); err != nil {
		slog.Error("Delete hub service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Hub deleted successfully", nil)
}
