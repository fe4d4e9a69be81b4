package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/events"
	"github.com/spec-kit/realty-service/internal/repository"
)

// ActivityService records session lifecycle events as audit rows and logs
// the remaining domain events.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	activities repository.LoginActivityRepository
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, activities repository.LoginActivityRepository) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		activities: activities,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionCommitted, a.handleSessionCommitted)
	a.dispatcher.Subscribe(events.EventSessionCleared, a.handleSessionCleared)
	a.dispatcher.Subscribe(events.EventPropertyCreated, a.handlePropertyCreated)
	a.dispatcher.Subscribe(events.EventAppointmentRequested, a.handleAppointmentRequested)
}

func (a *ActivityService) handleSessionCommitted(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.SessionCommittedPayload)
	a.logger.Info("SessionCommitted", zap.Int64("user_id", event.UserID), zap.String("role", string(payload.Role)))
	return a.record(ctx, event.UserID, payload.Email, "login", string(payload.Role))
}

func (a *ActivityService) handleSessionCleared(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.SessionClearedPayload)
	a.logger.Info("SessionCleared", zap.Int64("user_id", event.UserID))
	return a.record(ctx, event.UserID, payload.Email, "logout", "")
}

func (a *ActivityService) handlePropertyCreated(_ context.Context, event events.Event) error {
	a.logger.Info("PropertyCreated", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleAppointmentRequested(_ context.Context, event events.Event) error {
	a.logger.Info("AppointmentRequested", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) record(ctx context.Context, userID int64, email, action, role string) error {
	if a.activities == nil {
		return nil
	}
	activity := &repository.LoginActivity{
		UserID: userID,
		Email:  email,
		Action: action,
		Role:   role,
	}
	if err := a.activities.Insert(ctx, activity); err != nil {
		a.logger.Warn("failed to record login activity", zap.Error(err))
		return err
	}
	return nil
}

// ListRecent exposes the audit trail for administrators.
func (a *ActivityService) ListRecent(ctx context.Context, limit, offset int) ([]repository.LoginActivity, error) {
	return a.activities.ListRecent(ctx, normalizeLimit(limit), offset)
}
