package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/dto"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

// SubmissionHandler обрабатывает запросы для отметок о сдаче
type SubmissionHandler struct {
	submissionUseCase *usecase.SubmissionUseCase
	taskUseCase       *usecase.TaskUseCase
}

// NewSubmissionHandler создает новый handler для сдач
func NewSubmissionHandler(submissionUseCase *usecase.SubmissionUseCase, taskUseCase *usecase.TaskUseCase) *SubmissionHandler {
	return &SubmissionHandler{
		submissionUseCase: submissionUseCase,
		taskUseCase:       taskUseCase,
	}
}

// ToggleStatus обрабатывает POST /tasks/{taskID}/toggle
func (h *SubmissionHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := urlParamInt(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid task id")
		return
	}

	var req dto.ToggleStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "user_id is required")
		return
	}

	submission, err := h.submissionUseCase.ToggleStatus(r.Context(), taskID, req.UserID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSubmissionDTO(submission))
}

// GetUserTaskStatus обрабатывает GET /tasks/{taskID}/status?user_id=N
func (h *SubmissionHandler) GetUserTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := urlParamInt(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid task id")
		return
	}

	userID, ok := queryParamInt(r, "user_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "user_id query parameter is required")
		return
	}

	status, err := h.submissionUseCase.GetUserTaskStatus(r.Context(), taskID, userID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskStatusDTO(taskID, userID, status))
}

// GetTeamTasks обрабатывает GET /teams/{teamID}/tasks.
// С параметром user_id задания дополняются статусом сдачи пользователя,
// без него возвращается простой список заданий команды.
func (h *SubmissionHandler) GetTeamTasks(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParamInt(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team id")
		return
	}

	if r.URL.Query().Get("user_id") == "" {
		tasks, err := h.taskUseCase.GetTeamTasks(r.Context(), teamID)
		if err != nil {
			handleUseCaseError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, dto.ToTaskDTOs(tasks))
		return
	}

	userID, ok := queryParamInt(r, "user_id")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid user_id query parameter")
		return
	}

	tasks, err := h.submissionUseCase.GetTeamTasksWithStatus(r.Context(), teamID, userID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskWithStatusDTOs(tasks))
}
