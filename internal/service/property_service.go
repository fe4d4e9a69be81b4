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

// PropertyService coordinates listing workflows.
type PropertyService struct {
	properties repository.PropertyRepository
	dispatcher events.Dispatcher
}

// NewPropertyService constructs the service.
func NewPropertyService(properties repository.PropertyRepository, dispatcher events.Dispatcher) *PropertyService {
	return &PropertyService{properties: properties, dispatcher: dispatcher}
}

// PropertyCreateInput describes a new listing.
type PropertyCreateInput struct {
	Title       string
	Description string
	Address     string
	City        string
	Price       float64
}

// CreateProperty creates a listing owned by the agent.
func (s *PropertyService) CreateProperty(ctx context.Context, agentID int64, input PropertyCreateInput) (*domain.Property, error) {
	property := &domain.Property{
		AgentID:     agentID,
		Title:       input.Title,
		Description: input.Description,
		Address:     input.Address,
		City:        input.City,
		Price:       input.Price,
		Status:      domain.PropertyStatusAvailable,
	}
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyCreated, agentID, events.PropertyCreatedPayload{
		PropertyID: property.ID,
		City:       property.City,
		Title:      property.Title,
	})
	return property, nil
}

// UpdateProperty updates a listing the agent owns.
func (s *PropertyService) UpdateProperty(ctx context.Context, agentID, propertyID int64, input PropertyCreateInput) (*domain.Property, error) {
	property, err := s.ownedProperty(ctx, agentID, propertyID)
	if err != nil {
		return nil, err
	}

	property.Title = input.Title
	property.Description = input.Description
	property.Address = input.Address
	property.City = input.City
	property.Price = input.Price
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// ChangeStatus moves a listing the agent owns to a new status.
func (s *PropertyService) ChangeStatus(ctx context.Context, agentID, propertyID int64, status domain.PropertyStatus) (*domain.Property, error) {
	switch status {
	case domain.PropertyStatusAvailable, domain.PropertyStatusReserved, domain.PropertyStatusSold:
	default:
		return nil, apperrors.NewValidationError("unknown property status", map[string]any{"status": string(status)})
	}

	property, err := s.ownedProperty(ctx, agentID, propertyID)
	if err != nil {
		return nil, err
	}

	old := property.Status
	property.Status = status
	if err := s.properties.Update(ctx, property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyStatusChanged, agentID, events.PropertyStatusChangedPayload{
		PropertyID: property.ID,
		OldStatus:  old,
		NewStatus:  status,
	})
	return property, nil
}

// DeleteProperty removes a listing the agent owns.
func (s *PropertyService) DeleteProperty(ctx context.Context, agentID, propertyID int64) error {
	if _, err := s.ownedProperty(ctx, agentID, propertyID); err != nil {
		return err
	}
	return s.properties.Delete(ctx, propertyID)
}

// ListForAgent returns the agent's listings.
func (s *PropertyService) ListForAgent(ctx context.Context, agentID int64, limit, offset int) ([]domain.Property, error) {
	return s.properties.ListByAgent(ctx, agentID, normalizeLimit(limit), offset)
}

// ListAll returns every listing for administrators.
func (s *PropertyService) ListAll(ctx context.Context, limit, offset int) ([]domain.Property, error) {
	return s.properties.ListAll(ctx, normalizeLimit(limit), offset)
}

// Browse returns available listings matching the client's filter.
func (s *PropertyService) Browse(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, error) {
	filter.Limit = normalizeLimit(filter.Limit)
	return s.properties.ListAvailable(ctx, filter)
}

// GetByID returns one listing.
func (s *PropertyService) GetByID(ctx context.Context, propertyID int64) (*domain.Property, error) {
	return s.properties.GetByID(ctx, propertyID)
}

func (s *PropertyService) ownedProperty(ctx context.Context, agentID, propertyID int64) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.AgentID != agentID {
		return nil, apperrors.NewForbidden("property not owned by agent")
	}
	return property, nil
}

func (s *PropertyService) publish(ctx context.Context, eventType events.EventType, userID int64, payload interface{}) {
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

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 50
	}
	return limit
}
