package converter

import (
	"prescription-ai-service/internal/delivery/dto"
	"prescription-ai-service/internal/domain/entity"
)

// IntakeRequestToPatient assumes the request passed presence validation,
// so every field pointer is non-nil.
func IntakeRequestToPatient(req *dto.PatientIntakeRequest) *entity.Patient {
	return &entity.Patient{
		Name:           *req.Name,
		Age:            *req.Age,
		Weight:         *req.Weight,
		Height:         *req.Height,
		Allergies:      *req.Allergies,
		MedicalHistory: *req.MedicalHistory,
		Symptoms:       *req.Symptoms,
	}
}

func PatientToIntakeResponse(patient *entity.Patient) *dto.IntakeResponse {
	return &dto.IntakeResponse{
		Message:   "Patient and AI-powered prescription saved.",
		PatientID: patient.ID,
	}
}
