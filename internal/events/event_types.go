package events

import (
	"time"

	"github.com/spec-kit/realty-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionCommitted         EventType = "session_committed"
	EventSessionCleared           EventType = "session_cleared"
	EventPropertyCreated          EventType = "property_created"
	EventPropertyStatusChanged    EventType = "property_status_changed"
	EventAppointmentRequested     EventType = "appointment_requested"
	EventAppointmentStatusChanged EventType = "appointment_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionCommittedPayload payload.
type SessionCommittedPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// SessionClearedPayload payload.
type SessionClearedPayload struct {
	Email string `json:"email,omitempty"`
}

// PropertyCreatedPayload payload.
type PropertyCreatedPayload struct {
	PropertyID int64  `json:"property_id"`
	City       string `json:"city"`
	Title      string `json:"title"`
}

// PropertyStatusChangedPayload payload.
type PropertyStatusChangedPayload struct {
	PropertyID int64                 `json:"property_id"`
	OldStatus  domain.PropertyStatus `json:"old_status"`
	NewStatus  domain.PropertyStatus `json:"new_status"`
}

// AppointmentRequestedPayload payload.
type AppointmentRequestedPayload struct {
	AppointmentID int64     `json:"appointment_id"`
	PropertyID    int64     `json:"property_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

// AppointmentStatusChangedPayload payload.
type AppointmentStatusChangedPayload struct {
	AppointmentID int64                    `json:"appointment_id"`
	OldStatus     domain.AppointmentStatus `json:"old_status"`
	NewStatus     domain.AppointmentStatus `json:"new_status"`
}
