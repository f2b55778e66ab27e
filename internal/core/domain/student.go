package domain

// Student represents a learner registered in an institution.
// NIS (Nomor Induk Siswa) is the school-issued student number.
type Student struct {
	StudentID      string       `json:"studentID"`
	NIS            string       `json:"nis"`
	Name           string       `json:"name"`
	ClassroomID    string       `json:"classroomID"`
	InstitutionID  string       `json:"institutionID"`
	AcademicYearID string       `json:"academicYearID"`
	Status         EntityStatus `json:"status"`
	Phone          string       `json:"phone"`
	Email          string       `json:"email"`
	Address        string       `json:"address"`
	AuditFields
}
