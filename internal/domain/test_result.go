package domain

import "time"

// ResultStatus tracks review of a recorded result.
type ResultStatus string

const (
	ResultStatusPending   ResultStatus = "pending"
	ResultStatusCompleted ResultStatus = "completed"
	ResultStatusVerified  ResultStatus = "verified"
	ResultStatusRejected  ResultStatus = "rejected"
)

// ResultStatuses lists every valid result status.
var ResultStatuses = []ResultStatus{
	ResultStatusPending,
	ResultStatusCompleted,
	ResultStatusVerified,
	ResultStatusRejected,
}

// Valid reports whether s is a known result status.
func (s ResultStatus) Valid() bool {
	for _, candidate := range ResultStatuses {
		if s == candidate {
			return true
		}
	}
	return false
}

// TestResult records the outcome of running a LabTest on a Sample.
type TestResult struct {
	ID             int64
	SampleID       int64
	TestID         int64
	Value          string
	Unit           *string
	ReferenceRange *string
	PerformedBy    int64
	PerformedAt    time.Time
	Status         ResultStatus
}
