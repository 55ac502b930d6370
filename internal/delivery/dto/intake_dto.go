package dto

// PatientIntakeRequest is the /submit payload. All seven fields are
// required to be present but carry no further range or format validation:
// pointers make `required` mean presence, so zero values such as age 0 or
// an empty allergies string are accepted.
type PatientIntakeRequest struct {
	Name           *string  `json:"name" validate:"required"`
	Age            *int     `json:"age" validate:"required"`
	Weight         *float64 `json:"weight" validate:"required"`
	Height         *float64 `json:"height" validate:"required"`
	Allergies      *string  `json:"allergies" validate:"required"`
	MedicalHistory *string  `json:"medical_history" validate:"required"`
	Symptoms       *string  `json:"symptoms" validate:"required"`
}

type IntakeResponse struct {
	Message   string `json:"message"`
	PatientID uint   `json:"patient_id"`
}
