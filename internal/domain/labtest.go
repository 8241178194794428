package domain

import "time"

// TestType groups lab tests by discipline.
type TestType string

const (
	TestTypeHematology   TestType = "hematology"
	TestTypeBiochemistry TestType = "biochemistry"
	TestTypeMicrobiology TestType = "microbiology"
	TestTypeImmunology   TestType = "immunology"
	TestTypeMolecular    TestType = "molecular"
)

// Valid reports whether t is a known discipline.
func (t TestType) Valid() bool {
	switch t {
	case TestTypeHematology, TestTypeBiochemistry, TestTypeMicrobiology, TestTypeImmunology, TestTypeMolecular:
		return true
	}
	return false
}

// LabTest is a test definition samples can be run against.
type LabTest struct {
	ID          int64
	Name        string
	Type        TestType
	Description *string
	CreatedAt   time.Time
}
