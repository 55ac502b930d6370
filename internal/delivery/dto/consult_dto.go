package dto

// ConsultRequest is the /chatbot payload. Both fields are required; a
// missing field is a client error and never reaches storage or the model.
type ConsultRequest struct {
	PatientID uint   `json:"patient_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type ConsultResponse struct {
	Reply string `json:"reply"`
}
