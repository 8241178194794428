package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/labtrack/internal/events"
	"github.com/spec-kit/labtrack/internal/service"
)

// ErrQueueFull is returned when the worker cannot accept another event.
var ErrQueueFull = errors.New("notification queue full")

// ErrStopped is returned for events published after Stop.
var ErrStopped = errors.New("notification worker stopped")

const deliveryTimeout = 5 * time.Second

// NotificationWorker delivers events to the wrapped dispatcher on its own
// goroutine so request handlers never wait on subscribers.
type NotificationWorker struct {
	inner  events.Dispatcher
	logger *zap.Logger
	queue  chan events.Event

	mu      sync.RWMutex
	stopped bool
	done    chan struct{}
}

// NewNotificationWorker wraps inner with a queue of the given capacity.
func NewNotificationWorker(inner events.Dispatcher, logger *zap.Logger, capacity int) *NotificationWorker {
	if capacity <= 0 {
		capacity = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationWorker{
		inner:  inner,
		logger: logger,
		queue:  make(chan events.Event, capacity),
		done:   make(chan struct{}),
	}
}

// Publish enqueues event without blocking.
func (w *NotificationWorker) Publish(_ context.Context, event events.Event) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return ErrStopped
	}
	select {
	case w.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe registers handler on the wrapped dispatcher.
func (w *NotificationWorker) Subscribe(eventType events.EventType, handler events.EventHandler) {
	w.inner.Subscribe(eventType, handler)
}

// Start runs the delivery loop until Stop is called.
func (w *NotificationWorker) Start() {
	go func() {
		defer close(w.done)
		for event := range w.queue {
			w.deliver(event)
		}
	}()
}

// Stop refuses new events, drains the queue and waits for the loop to exit
// or ctx to expire.
func (w *NotificationWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.stopped {
		w.stopped = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *NotificationWorker) deliver(event events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()
	if err := w.inner.Publish(ctx, event); err != nil {
		w.logger.Warn("notification delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

// StartNotificationWorker registers notification handlers and starts delivery.
// Services publish to the returned worker.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger, capacity int) *NotificationWorker {
	dispatcher := events.NewInMemoryDispatcher()
	if notificationService != nil {
		notificationService.RegisterHandlers(dispatcher)
	}
	w := NewNotificationWorker(dispatcher, logger, capacity)
	w.Start()
	return w
}
