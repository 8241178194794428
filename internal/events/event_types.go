package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/labtrack/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSampleStatusChanged EventType = "sample_status_changed"
	EventResultRecorded      EventType = "result_recorded"
	EventInventoryLowStock   EventType = "inventory_low_stock"
)

// AllEventTypes lists every event the services emit.
var AllEventTypes = []EventType{
	EventSampleStatusChanged,
	EventResultRecorded,
	EventInventoryLowStock,
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ResourceID int64     `json:"resource_id"`
	ActorID    int64     `json:"actor_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, resourceID, actorID int64, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		ActorID:    actorID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// SampleStatusChangedPayload payload.
type SampleStatusChangedPayload struct {
	SampleCode string              `json:"sample_id"`
	OldStatus  domain.SampleStatus `json:"old_status"`
	NewStatus  domain.SampleStatus `json:"new_status"`
}

// ResultRecordedPayload payload.
type ResultRecordedPayload struct {
	SampleID int64  `json:"sample_id"`
	TestID   int64  `json:"test_id"`
	Value    string `json:"result_value"`
}

// InventoryLowStockPayload payload.
type InventoryLowStockPayload struct {
	ItemCode     string `json:"item_code"`
	ItemName     string `json:"item_name"`
	Quantity     int    `json:"quantity"`
	MinThreshold int    `json:"min_threshold"`
}
