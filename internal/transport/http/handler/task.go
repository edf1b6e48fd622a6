package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/dto"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

// TaskHandler обрабатывает запросы для заданий
type TaskHandler struct {
	taskUseCase *usecase.TaskUseCase
}

// NewTaskHandler создает новый handler для заданий
func NewTaskHandler(taskUseCase *usecase.TaskUseCase) *TaskHandler {
	return &TaskHandler{taskUseCase: taskUseCase}
}

// CreateTask обрабатывает POST /subjects/{subjectID}/tasks
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := urlParamInt(r, "subjectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid subject id")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	task, err := h.taskUseCase.CreateTask(r.Context(), subjectID, req.Name, req.Description, req.Deadline)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskDTO(task))
}

// GetTask обрабатывает GET /tasks/{taskID}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := urlParamInt(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid task id")
		return
	}

	task, err := h.taskUseCase.GetTaskByID(r.Context(), taskID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDTO(task))
}

// GetSubjectTasks обрабатывает GET /subjects/{subjectID}/tasks
func (h *TaskHandler) GetSubjectTasks(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := urlParamInt(r, "subjectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid subject id")
		return
	}

	tasks, err := h.taskUseCase.GetSubjectTasks(r.Context(), subjectID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskDTOs(tasks))
}

// UpdateTask обрабатывает PUT /tasks/{taskID}
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := urlParamInt(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid task id")
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if err := h.taskUseCase.UpdateTask(r.Context(), taskID, req.Name, req.Description, req.Deadline); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask обрабатывает DELETE /tasks/{taskID}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := urlParamInt(r, "taskID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid task id")
		return
	}

	if err := h.taskUseCase.DeleteTask(r.Context(), taskID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
