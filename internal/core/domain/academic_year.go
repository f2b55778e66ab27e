package domain

import "time"

// AcademicYearStatus indicates the lifecycle state of an academic year.
type AcademicYearStatus string

const (
	YearActive   AcademicYearStatus = "active"
	YearInactive AcademicYearStatus = "inactive"
	YearUpcoming AcademicYearStatus = "upcoming"
)

// AcademicYear represents one school year, e.g. "2024/2025".
// At most one academic year is active at a time; activating one
// deactivates all others.
type AcademicYear struct {
	AcademicYearID string             `json:"academicYearID"`
	Name           string             `json:"name"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	Status         AcademicYearStatus `json:"status"`
	IsDefault      bool               `json:"isDefault"`
	AuditFields
}
