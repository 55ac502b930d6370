package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prescription-ai-service/internal/delivery/dto"
	"prescription-ai-service/internal/domain/entity"
	"prescription-ai-service/internal/repository"
)

type memoryRecordCache struct {
	records map[uint]*entity.Patient
	gets    int
	sets    int
}

func newMemoryRecordCache() *memoryRecordCache {
	return &memoryRecordCache{records: make(map[uint]*entity.Patient)}
}

func (c *memoryRecordCache) Get(ctx context.Context, patientID uint) (*entity.Patient, error) {
	_ = ctx
	c.gets++
	return c.records[patientID], nil
}

func (c *memoryRecordCache) Set(ctx context.Context, patient *entity.Patient) error {
	_ = ctx
	c.sets++
	c.records[patient.ID] = patient
	return nil
}

func TestAsk_ReturnsTrimmedReply(t *testing.T) {
	db := openTestDB(t)
	log := testLogger()

	patient := &entity.Patient{
		Name: "Jane Roe", Age: 42, Weight: 70.5, Height: 1.68,
		Allergies: "penicillin", MedicalHistory: "asthma", Symptoms: "persistent cough",
	}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	if err := db.Create(&entity.Prescription{
		PatientID: patient.ID, AISummary: "plan", TreatmentOptions: "plan", MedicationRecommendations: "plan",
	}).Error; err != nil {
		t.Fatalf("seed prescription: %v", err)
	}

	gen := &fakeGenerator{reply: "  Monitor overnight.  "}
	uc := NewConsultUsecase(db, log, repository.NewPatientRepository(), gen, nil, newAuditService(log))

	resp, err := uc.Ask(context.Background(), &dto.ConsultRequest{PatientID: patient.ID, Message: "Next steps?"})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if resp.Reply != "Monitor overnight." {
		t.Fatalf("expected trimmed reply, got %q", resp.Reply)
	}

	if gen.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", gen.calls)
	}
	p := gen.prompts[0]
	for _, want := range []string{"Jane Roe", "plan", "The doctor asks: Next steps?"} {
		if !strings.Contains(p, want) {
			t.Errorf("consult prompt missing %q:\n%s", want, p)
		}
	}

	// The exchange itself is not persisted, only the audit event.
	if n := countRows(t, db, &entity.AuditLog{}); n != 1 {
		t.Fatalf("expected 1 audit row, got %d", n)
	}
}

func TestAsk_UnknownPatientShortCircuits(t *testing.T) {
	db := openTestDB(t)
	log := testLogger()
	gen := &fakeGenerator{reply: "never"}

	uc := NewConsultUsecase(db, log, repository.NewPatientRepository(), gen, nil, newAuditService(log))

	_, err := uc.Ask(context.Background(), &dto.ConsultRequest{PatientID: 999, Message: "hello"})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("expected no model calls, got %d", gen.calls)
	}
}

func TestAsk_PatientWithoutPrescriptionIsNotFound(t *testing.T) {
	db := openTestDB(t)
	log := testLogger()
	gen := &fakeGenerator{reply: "never"}

	patient := &entity.Patient{Name: "No Rx", Age: 30, Weight: 60, Height: 1.7}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}

	uc := NewConsultUsecase(db, log, repository.NewPatientRepository(), gen, nil, newAuditService(log))

	_, err := uc.Ask(context.Background(), &dto.ConsultRequest{PatientID: patient.ID, Message: "hello"})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("expected no model calls, got %d", gen.calls)
	}
}

func TestAsk_PopulatesAndUsesRecordCache(t *testing.T) {
	db := openTestDB(t)
	log := testLogger()

	patient := &entity.Patient{Name: "Jane Roe", Age: 42, Weight: 70.5, Height: 1.68, Symptoms: "cough"}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	if err := db.Create(&entity.Prescription{PatientID: patient.ID, AISummary: "plan"}).Error; err != nil {
		t.Fatalf("seed prescription: %v", err)
	}

	gen := &fakeGenerator{reply: "ok"}
	recordCache := newMemoryRecordCache()
	uc := NewConsultUsecase(db, log, repository.NewPatientRepository(), gen, recordCache, newAuditService(log))

	req := &dto.ConsultRequest{PatientID: patient.ID, Message: "hello"}
	if _, err := uc.Ask(context.Background(), req); err != nil {
		t.Fatalf("first ask: %v", err)
	}
	if recordCache.sets != 1 {
		t.Fatalf("expected cache write after miss, got %d", recordCache.sets)
	}

	// Drop the rows to prove the second call is served from cache.
	if err := db.Where("1 = 1").Delete(&entity.Prescription{}).Error; err != nil {
		t.Fatalf("delete prescriptions: %v", err)
	}
	if err := db.Where("1 = 1").Delete(&entity.Patient{}).Error; err != nil {
		t.Fatalf("delete patients: %v", err)
	}

	if _, err := uc.Ask(context.Background(), req); err != nil {
		t.Fatalf("second ask: %v", err)
	}
	if recordCache.sets != 1 {
		t.Fatalf("expected no further cache writes, got %d", recordCache.sets)
	}
	if gen.calls != 2 {
		t.Fatalf("expected 2 model calls, got %d", gen.calls)
	}
}
