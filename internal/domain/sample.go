package domain

import "time"

// SampleStatus enumerates lifecycle states for a specimen.
type SampleStatus string

const (
	SampleStatusPending    SampleStatus = "pending"
	SampleStatusInProgress SampleStatus = "in_progress"
	SampleStatusCompleted  SampleStatus = "completed"
	SampleStatusCancelled  SampleStatus = "cancelled"
)

// SampleStatuses lists statuses in reporting order.
var SampleStatuses = []SampleStatus{
	SampleStatusPending,
	SampleStatusInProgress,
	SampleStatusCompleted,
	SampleStatusCancelled,
}

// Valid reports whether s is a known status.
func (s SampleStatus) Valid() bool {
	for _, candidate := range SampleStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// SamplePriority enumerates processing urgency.
type SamplePriority string

const (
	SamplePriorityLow    SamplePriority = "low"
	SamplePriorityNormal SamplePriority = "normal"
	SamplePriorityHigh   SamplePriority = "high"
	SamplePriorityUrgent SamplePriority = "urgent"
)

// Valid reports whether p is a known priority.
func (p SamplePriority) Valid() bool {
	switch p {
	case SamplePriorityLow, SamplePriorityNormal, SamplePriorityHigh, SamplePriorityUrgent:
		return true
	}
	return false
}

// Sample is a specimen registered for testing.
type Sample struct {
	ID             int64
	SampleCode     string
	PatientName    string
	SampleType     string
	CollectionDate time.Time
	Priority       SamplePriority
	Status         SampleStatus
	AssignedTo     *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
