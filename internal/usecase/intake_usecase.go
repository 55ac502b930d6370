package usecase

import (
	"context"

	"prescription-ai-service/internal/converter"
	"prescription-ai-service/internal/delivery/dto"
	"prescription-ai-service/internal/delivery/http/middleware"
	"prescription-ai-service/internal/domain/entity"
	domainRepo "prescription-ai-service/internal/domain/repository"
	"prescription-ai-service/internal/prompt"
	"prescription-ai-service/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Generator produces text for a prompt. Satisfied by the HuggingFace
// inference client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type IntakeUsecase interface {
	Submit(ctx context.Context, req *dto.PatientIntakeRequest) (*dto.IntakeResponse, error)
}

type intakeUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	patientRepo      domainRepo.PatientRepository
	prescriptionRepo domainRepo.PrescriptionRepository
	generator        Generator
	auditService     service.AuditService
	atomic           bool
}

func NewIntakeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo domainRepo.PatientRepository,
	prescriptionRepo domainRepo.PrescriptionRepository,
	generator Generator,
	auditService service.AuditService,
	atomic bool,
) IntakeUsecase {
	return &intakeUsecase{
		db:               db,
		log:              log,
		patientRepo:      patientRepo,
		prescriptionRepo: prescriptionRepo,
		generator:        generator,
		auditService:     auditService,
		atomic:           atomic,
	}
}

// Submit persists the patient, generates the prescription text and persists
// it linked to the patient.
//
// With atomic=false (the default) the two inserts are independent
// statements: a model or prescription-insert failure after the patient
// insert leaves an orphaned patient row behind. With atomic=true both
// inserts run in one transaction rolled back on any failure.
func (u *intakeUsecase) Submit(ctx context.Context, req *dto.PatientIntakeRequest) (*dto.IntakeResponse, error) {
	db := u.db
	if u.atomic {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return nil, tx.Error
		}
		defer tx.Rollback()
		db = tx
	}

	patient := converter.IntakeRequestToPatient(req)
	if err := u.patientRepo.Create(ctx, db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	output, err := u.generator.Generate(ctx, prompt.Intake(patient))
	if err != nil {
		u.log.Warnf("Failed to generate prescription text for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	prescription := &entity.Prescription{
		PatientID:                 patient.ID,
		AISummary:                 output,
		TreatmentOptions:          output,
		MedicationRecommendations: output,
	}
	if err := u.prescriptionRepo.Create(ctx, db, prescription); err != nil {
		u.log.Warnf("Failed to create prescription for patient %d: %+v", patient.ID, err)
		return nil, err
	}

	if u.atomic {
		if err := db.Commit().Error; err != nil {
			u.log.Warnf("Failed to commit intake transaction: %+v", err)
			return nil, err
		}
	}

	// The audit row is written outside the intake transaction so an audit
	// failure can neither abort the commit nor fail the intake.
	_ = u.auditService.LogIntake(ctx, u.db, patient.ID, prescription.ID)

	fields := logrus.Fields{
		"patient_id":      patient.ID,
		"prescription_id": prescription.ID,
	}
	if requestID, ok := middleware.GetRequestIDFromContext(ctx); ok {
		fields["request_id"] = requestID
	}
	u.log.WithFields(fields).Info("Intake stored")

	return converter.PatientToIntakeResponse(patient), nil
}
