package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/config"
	"github.com/spec-kit/labtrack/internal/events"
)

// Publisher fans serialized events out to external subscribers.
type Publisher interface {
	Enabled() bool
	Publish(ctx context.Context, channel string, payload []byte) error
}

// EventRecorder counts dispatched events.
type EventRecorder interface {
	RecordEvent(eventType string)
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	logger    *zap.Logger
	publisher Publisher
	recorder  EventRecorder
	cfg       config.NotificationConfig
}

// NewNotificationService creates the service. publisher and recorder may be nil.
func NewNotificationService(logger *zap.Logger, publisher Publisher, recorder EventRecorder, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		logger:    nopIfNil(logger),
		publisher: publisher,
		recorder:  recorder,
		cfg:       cfg,
	}
}

// RegisterHandlers subscribes to every domain event.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("event_type", string(event.Type)),
		zap.String("event_id", event.ID),
		zap.Int64("resource_id", event.ResourceID),
		zap.Int64("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	if n.recorder != nil {
		n.recorder.RecordEvent(string(event.Type))
	}
	return n.publish(ctx, event)
}

func (n *NotificationService) publish(ctx context.Context, event events.Event) error {
	if n.publisher == nil || !n.publisher.Enabled() || n.cfg.Channel == "" {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := n.publisher.Publish(ctx, n.cfg.Channel, body); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	return nil
}
