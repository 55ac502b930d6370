package entity

// Patient represents a single intake submission. Rows are created once and
// never updated or deleted by this service. The column set mirrors the
// pre-existing `patients` table, so no gorm timestamp fields.
type Patient struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	Age            int     `gorm:"not null" json:"age"`
	Weight         float64 `gorm:"not null" json:"weight"`
	Height         float64 `gorm:"not null" json:"height"`
	Allergies      string  `gorm:"type:text" json:"allergies"`
	MedicalHistory string  `gorm:"type:text" json:"medical_history"`
	Symptoms       string  `gorm:"type:text" json:"symptoms"`

	// Relationships
	Prescription *Prescription `gorm:"foreignKey:PatientID" json:"prescription,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}
