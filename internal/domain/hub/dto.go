package hub

import (
	"time"

	"github.com/esyhub/staffpay-backend/internal/pkg/validator"
)

type CreateHubRequest struct {
	HubName       string `json:"hub_name"`
	HubCode       string `json:"hub_code"`
	Location      string `json:"location"`
	ContactNumber string `json:"contact_number"`
}

func (r *CreateHubRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.HubName) {
		errs = append(errs, validator.ValidationError{Field: "hub_name", Message: "is required"})
	}
	if validator.IsEmpty(r.HubCode) {
		errs = append(errs, validator.ValidationError{Field: "hub_code", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateHubRequest struct {
	ID            string  `json:"-"`
	HubName       *string `json:"hub_name,omitempty"`
	HubCode       *string `json:"hub_code,omitempty"`
	Location      *string `json:"location,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
}

func (r *UpdateHubRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HubName != nil && validator.IsEmpty(*r.HubName) {
		errs = append(errs, validator.ValidationError{Field: "hub_name", Message: "must not be empty"})
	}
	if r.HubCode != nil && validator.IsEmpty(*r.HubCode) {
		errs = append(errs, validator.ValidationError{Field: "hub_code", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HubResponse struct {
	ID            string `json:"id"`
	HubName       string `json:"hub_name"`
	HubCode       string `json:"hub_code"`
	Location      string `json:"location"`
	ContactNumber string `json:"contact_number"`
	CreatedAt     string `json:"created_at"`
}

func ToResponse(h Hub) HubResponse {
	return HubResponse{
		ID:            h.ID,
		HubName:       h.HubName,
		HubCode:       h.HubCode,
		Location:      h.Location,
		ContactNumber: h.ContactNumber,
		CreatedAt:     h.CreatedAt.Format(time.RFC3339),
	}
}

func ToResponses(hubs []Hub) []HubResponse {
	result := make([]HubResponse, 0, len(hubs))
	for _, h := range hubs {
		result = append(result, ToResponse(h))
	}
	return result
}
