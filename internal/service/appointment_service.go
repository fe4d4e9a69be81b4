package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AppointmentService coordinates property visit requests.
type AppointmentService struct {
	appointments repository.AppointmentRepository
	properties   repository.PropertyRepository
	dispatcher   events.Dispatcher
}

// NewAppointmentService constructs the service.
func NewAppointmentService(appointments repository.AppointmentRepository, properties repository.PropertyRepository, dispatcher events.Dispatcher) *AppointmentService {
	return &AppointmentService{appointments: appointments, properties: properties, dispatcher: dispatcher}
}

// Request creates a visit request by a client for an available listing.
func (s *AppointmentService) Request(ctx context.Context, clientID, propertyID int64, scheduledAt time.Time, notes string) (*domain.Appointment, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.Status != domain.PropertyStatusAvailable {
		return nil, apperrors.NewConflict("property not available for visits", nil)
	}

	appointment := &domain.Appointment{
		PropertyID:  propertyID,
		ClientID:    clientID,
		AgentID:     property.AgentID,
		ScheduledAt: scheduledAt,
		Status:      domain.AppointmentStatusRequested,
		Notes:       notes,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventAppointmentRequested, clientID, events.AppointmentRequestedPayload{
		AppointmentID: appointment.ID,
		PropertyID:    propertyID,
		ScheduledAt:   scheduledAt,
	})
	return appointment, nil
}

// UpdateStatus lets the listing's agent confirm, cancel or complete a visit.
func (s *AppointmentService) UpdateStatus(ctx context.Context, agentID, appointmentID int64, status domain.AppointmentStatus) (*domain.Appointment, error) {
	switch status {
	case domain.AppointmentStatusConfirmed, domain.AppointmentStatusCancelled, domain.AppointmentStatusCompleted:
	default:
		return nil, apperrors.NewValidationError("unknown appointment status", map[string]any{"status": string(status)})
	}

	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.AgentID != agentID {
		return nil, apperrors.NewForbidden("appointment not assigned to agent")
	}

	old := appointment.Status
	if err := s.appointments.UpdateStatus(ctx, appointmentID, status); err != nil {
		return nil, err
	}
	appointment.Status = status

	s.publish(ctx, events.EventAppointmentStatusChanged, agentID, events.AppointmentStatusChangedPayload{
		AppointmentID: appointmentID,
		OldStatus:     old,
		NewStatus:     status,
	})
	return appointment, nil
}

// ListForClient returns the client's visit requests.
func (s *AppointmentService) ListForClient(ctx context.Context, clientID int64, limit, offset int) ([]domain.Appointment, error) {
	return s.appointments.ListByClient(ctx, clientID, normalizeLimit(limit), offset)
}

// ListForAgent returns visits on the agent's listings.
func (s *AppointmentService) ListForAgent(ctx context.Context, agentID int64, limit, offset int) ([]domain.Appointment, error) {
	return s.appointments.ListByAgent(ctx, agentID, normalizeLimit(limit), offset)
}

func (s *AppointmentService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
