package entity

// Prescription holds the generated text for a patient. The intake flow
// currently stores the identical model output in all three text columns;
// the prompt asks for three labeled sections but the response is not split.
type Prescription struct {
	ID                        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID                 uint   `gorm:"index;not null" json:"patient_id"`
	AISummary                 string `gorm:"type:text" json:"ai_summary"`
	TreatmentOptions          string `gorm:"type:text" json:"treatment_options"`
	MedicationRecommendations string `gorm:"type:text" json:"medication_recommendations"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
