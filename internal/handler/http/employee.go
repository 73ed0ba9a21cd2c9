package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/handler/http/response"
	employeeService "github.com/esyhub/staffpay-backend/internal/service/employee"
	ledgerService "github.com/esyhub/staffpay-backend/internal/service/ledger"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	RecomputeBalance(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employeeService.Service
	ledgerService   ledgerService.Service
}

func NewEmployeeHandler(service employeeService.Service, ledger ledgerService.Service) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: service,
		ledgerService:   ledger,
	}
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", resp)
}

// GetByID implements EmployeeHandler.
func (h *EmployeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")

	resp, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := employee.ListFilter{
		HubID:  r.URL.Query().Get("hub_id"),
		Search: r.URL.Query().Get("search"),
		SortBy: r.URL.Query().Get("sort_by"),
		Desc:   r.URL.Query().Get("order") == "desc",
	}

	resp, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "employeeID")

	resp, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		slog.Error("Update employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated successfully", resp)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")
	cascade := r.URL.Query().Get("cascade") == "true"

	if err := h.employeeService.DeleteEmployee(r.Context(), id, cascade); err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// RecomputeBalance implements EmployeeHandler.
func (h *EmployeeHandlerImpl) RecomputeBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "employeeID")

	resp, err := h.ledgerService.RecomputeBalance(r.Context(), id)
	if err != nil {
		slog.Error("Recompute balance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balance recomputed from transactions", resp)
}
