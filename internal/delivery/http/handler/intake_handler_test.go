package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"prescription-ai-service/internal/delivery/dto"
	"prescription-ai-service/internal/infrastructure/inference"
	"prescription-ai-service/pkg/validator"
)

type stubIntakeUsecase struct {
	resp  *dto.IntakeResponse
	err   error
	calls int
}

func (s *stubIntakeUsecase) Submit(ctx context.Context, req *dto.PatientIntakeRequest) (*dto.IntakeResponse, error) {
	_ = ctx
	_ = req
	s.calls++
	return s.resp, s.err
}

const validIntakeBody = `{
	"name": "Jane Roe",
	"age": 42,
	"weight": 70.5,
	"height": 1.68,
	"allergies": "penicillin",
	"medical_history": "asthma",
	"symptoms": "persistent cough"
}`

func postIntake(t *testing.T, h *IntakeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func TestSubmit_ReturnsPatientID(t *testing.T) {
	stub := &stubIntakeUsecase{resp: &dto.IntakeResponse{
		Message:   "Patient and AI-powered prescription saved.",
		PatientID: 12,
	}}
	h := NewIntakeHandler(stub, validator.NewValidator())

	rec := postIntake(t, h, validIntakeBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body dto.IntakeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.PatientID != 12 {
		t.Fatalf("unexpected patient id: %d", body.PatientID)
	}
}

func TestSubmit_AcceptsZeroValuedFields(t *testing.T) {
	// Presence is required but zero values are legitimate input: a
	// newborn's age is 0 and an empty allergies string means "none".
	stub := &stubIntakeUsecase{resp: &dto.IntakeResponse{
		Message:   "Patient and AI-powered prescription saved.",
		PatientID: 3,
	}}
	h := NewIntakeHandler(stub, validator.NewValidator())

	rec := postIntake(t, h, `{
		"name": "Baby Roe",
		"age": 0,
		"weight": 3.2,
		"height": 0.5,
		"allergies": "",
		"medical_history": "",
		"symptoms": "fever"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 usecase call, got %d", stub.calls)
	}
}

func TestSubmit_MissingFieldsAreClientErrors(t *testing.T) {
	stub := &stubIntakeUsecase{}
	h := NewIntakeHandler(stub, validator.NewValidator())

	rec := postIntake(t, h, `{"name": "Jane Roe"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if stub.calls != 0 {
		t.Fatalf("expected usecase not to be called, got %d calls", stub.calls)
	}
}

func TestSubmit_MalformedBodyIsClientError(t *testing.T) {
	stub := &stubIntakeUsecase{}
	h := NewIntakeHandler(stub, validator.NewValidator())

	rec := postIntake(t, h, `{`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSubmit_ErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"transport failure", &inference.TransportError{Err: context.DeadlineExceeded}, http.StatusBadGateway},
		{"remote model error", &inference.ModelError{Message: "loading"}, http.StatusBadGateway},
		{"unexpected shape", &inference.UnexpectedResponseError{}, http.StatusBadGateway},
		{"storage failure", context.Canceled, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubIntakeUsecase{err: tc.err}
			h := NewIntakeHandler(stub, validator.NewValidator())

			rec := postIntake(t, h, validIntakeBody)

			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}
