package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/spec-kit/labtrack/internal/events"
)

func TestNotificationWorker_DeliversAndDrains(t *testing.T) {
	inner := events.NewInMemoryDispatcher()
	var mu sync.Mutex
	var delivered []string
	inner.Subscribe(events.EventResultRecorded, func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		delivered = append(delivered, e.ID)
		return nil
	})

	w := NewNotificationWorker(inner, nil, 10)
	w.Start()
	for i := 0; i < 5; i++ {
		if err := w.Publish(context.Background(), events.NewEvent(events.EventResultRecorded, int64(i), 1, nil)); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := w.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 5 {
		t.Errorf("delivered %d events, want 5", len(delivered))
	}

	if err := w.Publish(context.Background(), events.NewEvent(events.EventResultRecorded, 9, 1, nil)); !errors.Is(err, ErrStopped) {
		t.Errorf("Publish() after Stop error = %v, want ErrStopped", err)
	}
}

func TestNotificationWorker_QueueFull(t *testing.T) {
	inner := events.NewInMemoryDispatcher()
	w := NewNotificationWorker(inner, nil, 1)

	// Not started, so the single slot stays occupied.
	if err := w.Publish(context.Background(), events.NewEvent(events.EventInventoryLowStock, 1, 1, nil)); err != nil {
		t.Fatalf("first Publish() error = %v", err)
	}
	if err := w.Publish(context.Background(), events.NewEvent(events.EventInventoryLowStock, 2, 1, nil)); !errors.Is(err, ErrQueueFull) {
		t.Errorf("second Publish() error = %v, want ErrQueueFull", err)
	}
}
