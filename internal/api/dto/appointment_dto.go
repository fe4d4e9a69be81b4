package dto

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// RequestAppointmentRequest payload.
type RequestAppointmentRequest struct {
	PropertyID  int64     `json:"property_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

// UpdateAppointmentStatusRequest payload.
type UpdateAppointmentStatusRequest struct {
	Status domain.AppointmentStatus `json:"status"`
}

// AppointmentResponse is the public view of a viewing appointment.
type AppointmentResponse struct {
	ID          int64                    `json:"id"`
	PropertyID  int64                    `json:"property_id"`
	ClientID    int64                    `json:"client_id"`
	AgentID     int64                    `json:"agent_id"`
	ScheduledAt time.Time                `json:"scheduled_at"`
	Status      domain.AppointmentStatus `json:"status"`
	Notes       string                   `json:"notes,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// NewAppointmentResponse maps an appointment to its public view.
func NewAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID,
		PropertyID:  a.PropertyID,
		ClientID:    a.ClientID,
		AgentID:     a.AgentID,
		ScheduledAt: a.ScheduledAt,
		Status:      a.Status,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// NewAppointmentResponses maps a slice of appointments.
func NewAppointmentResponses(items []domain.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(items))
	for i := range items {
		out = append(out, NewAppointmentResponse(&items[i]))
	}
	return out
}
