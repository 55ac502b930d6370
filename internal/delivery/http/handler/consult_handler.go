package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"prescription-ai-service/internal/delivery/dto"
	"prescription-ai-service/internal/usecase"
	"prescription-ai-service/pkg/response"
	"prescription-ai-service/pkg/validator"
)

type ConsultHandler struct {
	consultUsecase usecase.ConsultUsecase
	validator      *validator.CustomValidator
}

func NewConsultHandler(consultUsecase usecase.ConsultUsecase, validator *validator.CustomValidator) *ConsultHandler {
	return &ConsultHandler{
		consultUsecase: consultUsecase,
		validator:      validator,
	}
}

// Ask answers a follow-up question against a stored patient record. A
// missing field fails before any lookup or model call.
func (h *ConsultHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req dto.ConsultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.consultUsecase.Ask(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrPatientNotFound) {
			response.NotFound(w, "Patient not found.")
			return
		}
		writeGenerationError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}
