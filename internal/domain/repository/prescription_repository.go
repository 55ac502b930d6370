package repository

import (
	"context"

	"prescription-ai-service/internal/domain/entity"

	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error
}
