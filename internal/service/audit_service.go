package service

import (
	"context"

	"prescription-ai-service/internal/domain/entity"
	"prescription-ai-service/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records intake and consult events. Consult entries carry
// identifiers only, never the question text, since the Q&A exchange itself
// is not persisted.
type AuditService interface {
	LogIntake(ctx context.Context, tx *gorm.DB, patientID, prescriptionID uint) error
	LogConsult(ctx context.Context, tx *gorm.DB, patientID uint) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogIntake(ctx context.Context, tx *gorm.DB, patientID, prescriptionID uint) error {
	auditLog := &entity.AuditLog{
		Action: entity.AuditActionIntakeCreate,
		Metadata: entity.JSON{
			"patient_id":      patientID,
			"prescription_id": prescriptionID,
		},
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

func (s *auditService) LogConsult(ctx context.Context, tx *gorm.DB, patientID uint) error {
	auditLog := &entity.AuditLog{
		Action: entity.AuditActionConsultAsk,
		Metadata: entity.JSON{
			"patient_id": patientID,
		},
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
