package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/dto"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

// SubjectHandler обрабатывает запросы для предметов
type SubjectHandler struct {
	subjectUseCase *usecase.SubjectUseCase
}

// NewSubjectHandler создает новый handler для предметов
func NewSubjectHandler(subjectUseCase *usecase.SubjectUseCase) *SubjectHandler {
	return &SubjectHandler{subjectUseCase: subjectUseCase}
}

// CreateSubject обрабатывает POST /teams/{teamID}/subjects
func (h *SubjectHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParamInt(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team id")
		return
	}

	var req dto.CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	status, err := entity.ParseSubjectStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "unknown subject status")
		return
	}

	subject, err := h.subjectUseCase.CreateSubject(r.Context(), teamID, req.Title, req.SubjectInfo, status)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToSubjectDTO(subject))
}

// GetSubject обрабатывает GET /subjects/{subjectID}
func (h *SubjectHandler) GetSubject(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := urlParamInt(r, "subjectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid subject id")
		return
	}

	subject, err := h.subjectUseCase.GetSubjectByID(r.Context(), subjectID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSubjectDTO(subject))
}

// GetTeamSubjects обрабатывает GET /teams/{teamID}/subjects
func (h *SubjectHandler) GetTeamSubjects(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParamInt(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team id")
		return
	}

	subjects, err := h.subjectUseCase.GetTeamSubjects(r.Context(), teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSubjectDTOs(subjects))
}

// UpdateSubject обрабатывает PUT /subjects/{subjectID}
func (h *SubjectHandler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := urlParamInt(r, "subjectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid subject id")
		return
	}

	var req dto.UpdateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	status, err := entity.ParseSubjectStatus(req.Status)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "unknown subject status")
		return
	}

	if err := h.subjectUseCase.UpdateSubject(r.Context(), subjectID, req.Title, req.SubjectInfo, status); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSubject обрабатывает DELETE /subjects/{subjectID}
func (h *SubjectHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := urlParamInt(r, "subjectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid subject id")
		return
	}

	if err := h.subjectUseCase.DeleteSubject(r.Context(), subjectID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
