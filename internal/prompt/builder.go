// Package prompt renders patient data into the natural-language
// instructions sent to the text-generation endpoint. Builders are pure:
// identical input always yields an identical string.
package prompt

import (
	"fmt"

	"prescription-ai-service/internal/domain/entity"
)

// Intake renders the initial clinical instruction. It asks for three
// labeled sections; downstream storage currently keeps the reply as one
// undivided string.
func Intake(patient *entity.Patient) string {
	return fmt.Sprintf(`Patient is a %d-year-old with symptoms: %s.
Medical history: %s.
Allergies: %s.

Generate:
1. A summary of the patient's condition
2. Possible treatment options
3. Recommended medications`,
		patient.Age, patient.Symptoms, patient.MedicalHistory, patient.Allergies)
}

// Consult renders the follow-up Q&A instruction from the stored
// patient/prescription pair and the doctor's free-text question.
func Consult(patient *entity.Patient, question string) string {
	var summary, treatment, medication string
	if patient.Prescription != nil {
		summary = patient.Prescription.AISummary
		treatment = patient.Prescription.TreatmentOptions
		medication = patient.Prescription.MedicationRecommendations
	}
	return fmt.Sprintf(`You are an AI medical assistant. A doctor is reviewing a case with the following patient data:

Patient Name: %s
Age: %d
Symptoms: %s
Medical History: %s
Allergies: %s

AI-Generated Summary: %s
AI Treatment Options: %s
AI Medication Recommendations: %s

The doctor asks: %s

Respond clearly and concisely as if advising a medical team.`,
		patient.Name, patient.Age, patient.Symptoms, patient.MedicalHistory, patient.Allergies,
		summary, treatment, medication, question)
}
