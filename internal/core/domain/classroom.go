package domain

// Classroom represents a class (rombongan belajar) within an institution
// for one academic year, e.g. "X IPA 1".
type Classroom struct {
	ClassroomID     string       `json:"classroomID"`
	Name            string       `json:"name"`
	Code            string       `json:"code"`
	InstitutionID   string       `json:"institutionID"`
	AcademicYearID  string       `json:"academicYearID"`
	Level           string       `json:"level"`   // X, XI, XII
	Section         string       `json:"section"` // IPA 1, IPS 2, ...
	Capacity        int          `json:"capacity"`
	CurrentStrength int          `json:"currentStrength"`
	ClassTeacherID  string       `json:"classTeacherID,omitempty"`
	FeeStructureID  string       `json:"feeStructureID,omitempty"`
	Status          EntityStatus `json:"status"`
	AuditFields
}

// IsOverCapacity reports whether enrollment exceeds capacity.
// Over-capacity is advisory only and never blocks enrollment.
func (c Classroom) IsOverCapacity() bool {
	return c.Capacity > 0 && c.CurrentStrength > c.Capacity
}
