package domain

// InstitutionSettings holds per-institution billing configuration.
type InstitutionSettings struct {
	Currency            string `json:"currency"`          // ISO code, e.g. "IDR"
	Timezone            string `json:"timezone"`          // e.g. "Asia/Jakarta"
	AcademicYearStart   int    `json:"academicYearStart"` // month (1-12)
	PaymentDueDays      int    `json:"paymentDueDays"`
	LateFeePercentage   int    `json:"lateFeePercentage"`
	EnableAutoReminders bool   `json:"enableAutoReminders"`
}

// Institution represents a school managed by the console.
// It owns classrooms and fee structures by reference.
type Institution struct {
	InstitutionID   string              `json:"institutionID"`
	Name            string              `json:"name"`
	Code            string              `json:"code"`
	Address         string              `json:"address"`
	Phone           string              `json:"phone"`
	Email           string              `json:"email"`
	PrincipalName   string              `json:"principalName"`
	EstablishedYear int                 `json:"establishedYear"`
	Status          EntityStatus        `json:"status"`
	Settings        InstitutionSettings `json:"settings"`
	AuditFields
}
