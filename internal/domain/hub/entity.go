package hub

import "time"

// Hub is the organizational unit a staff member is assigned to. Pure
// reference data: a label and a filter, nothing computed.
type Hub struct {
	ID            string
	HubName       string
	HubCode       string
	Location      string
	ContactNumber string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
