package domain

import "time"

// AppointmentStatus enumerates visit request states.
type AppointmentStatus string

const (
	AppointmentStatusRequested AppointmentStatus = "REQUESTED"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// Appointment is a property visit requested by a client and handled by the
// listing's agent.
type Appointment struct {
	ID          int64
	PropertyID  int64
	ClientID    int64
	AgentID     int64
	ScheduledAt time.Time
	Status      AppointmentStatus
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
