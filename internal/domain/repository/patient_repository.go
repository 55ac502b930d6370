package repository

import (
	"context"

	"prescription-ai-service/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	// FindWithPrescription loads a patient together with its prescription.
	// Returns (nil, nil) when either half of the pair is missing.
	FindWithPrescription(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error)
}
