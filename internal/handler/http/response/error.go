package response

import (
	"errors"
	"net/http"

	"github.com/esyhub/staffpay-backend/internal/domain/auth"
	"github.com/esyhub/staffpay-backend/internal/domain/employee"
	"github.com/esyhub/staffpay-backend/internal/domain/hub"
	"github.com/esyhub/staffpay-backend/internal/domain/ledger"
	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Hub domain errors
	case errors.Is(err, hub.ErrHubNotFound):
		NotFound(w, "Hub not found")
	case errors.Is(err, hub.ErrHubCodeExists):
		Conflict(w, "Hub code already exists")

	// Ledger domain errors
	case errors.Is(err, ledger.ErrTransactionNotFound):
		NotFound(w, "Transaction not found")
	case errors.Is(err, ledger.ErrDuplicateSalaryEntry):
		Conflict(w, "Salary entry already exists for this month")
	case errors.Is(err, ledger.ErrNotSalaryTransaction):
		BadRequest(w, "Transaction is not a salary entry", nil)
	case errors.Is(err, ledger.ErrSalaryNotEditable):
		BadRequest(w, "Salary entries cannot be edited as advances", nil)
	case errors.Is(err, ledger.ErrBalanceIncrementFailed):
		// entry was written but the cached balance was not; tell the
		// caller to run the balance recompute
		InternalServerError(w, "Transaction recorded but balance update failed; recompute the balance")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
