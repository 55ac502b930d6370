package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"prescription-ai-service/internal/delivery/dto"
	"prescription-ai-service/internal/infrastructure/inference"
	"prescription-ai-service/internal/usecase"
	"prescription-ai-service/pkg/response"
	"prescription-ai-service/pkg/validator"
)

type IntakeHandler struct {
	intakeUsecase usecase.IntakeUsecase
	validator     *validator.CustomValidator
}

func NewIntakeHandler(intakeUsecase usecase.IntakeUsecase, validator *validator.CustomValidator) *IntakeHandler {
	return &IntakeHandler{
		intakeUsecase: intakeUsecase,
		validator:     validator,
	}
}

// Submit stores a patient record, generates the prescription text and
// returns the new patient id.
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientIntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.intakeUsecase.Submit(r.Context(), &req)
	if err != nil {
		writeGenerationError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// writeGenerationError maps the inference client's failure kinds onto
// upstream-dependency responses; anything else is an internal error.
func writeGenerationError(w http.ResponseWriter, err error) {
	var (
		transportErr *inference.TransportError
		modelErr     *inference.ModelError
		shapeErr     *inference.UnexpectedResponseError
	)
	switch {
	case errors.As(err, &transportErr):
		response.BadGateway(w, transportErr.Error())
	case errors.As(err, &modelErr):
		response.BadGateway(w, modelErr.Error())
	case errors.As(err, &shapeErr):
		response.BadGateway(w, shapeErr.Error())
	default:
		response.InternalServerError(w, err.Error())
	}
}
