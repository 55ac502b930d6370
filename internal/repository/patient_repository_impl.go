package repository

import (
	"context"
	"errors"

	"prescription-ai-service/internal/domain/entity"
	domainRepo "prescription-ai-service/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindWithPrescription(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).
		Preload("Prescription").
		First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	// The consult flow needs the stored generated text, so a patient
	// without a prescription counts as missing.
	if patient.Prescription == nil {
		return nil, nil
	}
	return &patient, nil
}
