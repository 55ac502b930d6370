package usecase

import (
	"context"
	"errors"
	"strings"

	"prescription-ai-service/internal/delivery/dto"
	"prescription-ai-service/internal/delivery/http/middleware"
	"prescription-ai-service/internal/domain/entity"
	domainRepo "prescription-ai-service/internal/domain/repository"
	"prescription-ai-service/internal/prompt"
	"prescription-ai-service/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

// RecordCache caches the immutable joined patient+prescription record.
// A nil cache disables caching.
type RecordCache interface {
	Get(ctx context.Context, patientID uint) (*entity.Patient, error)
	Set(ctx context.Context, patient *entity.Patient) error
}

type ConsultUsecase interface {
	Ask(ctx context.Context, req *dto.ConsultRequest) (*dto.ConsultResponse, error)
}

type consultUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  domainRepo.PatientRepository
	generator    Generator
	cache        RecordCache
	auditService service.AuditService
}

func NewConsultUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo domainRepo.PatientRepository,
	generator Generator,
	cache RecordCache,
	auditService service.AuditService,
) ConsultUsecase {
	return &consultUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		generator:    generator,
		cache:        cache,
		auditService: auditService,
	}
}

// Ask answers a follow-up question against a stored patient/prescription
// pair. An unknown patient id short-circuits before any model call. The
// exchange itself is not persisted.
func (u *consultUsecase) Ask(ctx context.Context, req *dto.ConsultRequest) (*dto.ConsultResponse, error) {
	patient, err := u.lookupRecord(ctx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to load consult record for patient %d: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	reply, err := u.generator.Generate(ctx, prompt.Consult(patient, req.Message))
	if err != nil {
		u.log.Warnf("Failed to generate consult reply for patient %d: %+v", req.PatientID, err)
		return nil, err
	}

	// Audit failures are logged but do not fail the consult.
	_ = u.auditService.LogConsult(ctx, u.db, patient.ID)

	fields := logrus.Fields{"patient_id": patient.ID}
	if requestID, ok := middleware.GetRequestIDFromContext(ctx); ok {
		fields["request_id"] = requestID
	}
	u.log.WithFields(fields).Info("Consult answered")

	return &dto.ConsultResponse{Reply: strings.TrimSpace(reply)}, nil
}

func (u *consultUsecase) lookupRecord(ctx context.Context, patientID uint) (*entity.Patient, error) {
	if u.cache != nil {
		cached, err := u.cache.Get(ctx, patientID)
		if err != nil {
			u.log.Warnf("Record cache read failed for patient %d: %+v", patientID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	patient, err := u.patientRepo.FindWithPrescription(ctx, u.db, patientID)
	if err != nil || patient == nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, patient); err != nil {
			u.log.Warnf("Record cache write failed for patient %d: %+v", patientID, err)
		}
	}
	return patient, nil
}
