package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/dto"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

// TeamHandler обрабатывает запросы для команд
type TeamHandler struct {
	teamUseCase *usecase.TeamUseCase
}

// NewTeamHandler создает новый handler для команд
func NewTeamHandler(teamUseCase *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{teamUseCase: teamUseCase}
}

// CreateTeam обрабатывает POST /teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if req.OwnerID <= 0 {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "owner_id is required")
		return
	}

	team, err := h.teamUseCase.CreateTeam(r.Context(), req.Name, req.OwnerID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTeamDTO(team))
}

// GetTeam обрабатывает GET /teams/{teamID}
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParamInt(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team id")
		return
	}

	team, err := h.teamUseCase.GetTeamByID(r.Context(), teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTO(team))
}

// GetUserTeams обрабатывает GET /users/{userID}/teams
func (h *TeamHandler) GetUserTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := urlParamInt(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid user id")
		return
	}

	teams, err := h.teamUseCase.GetUserTeams(r.Context(), userID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTOs(teams))
}

// GetTeamByCode обрабатывает GET /teams/code/{code}
func (h *TeamHandler) GetTeamByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team code")
		return
	}

	team, err := h.teamUseCase.GetTeamByCode(r.Context(), code)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTO(team))
}

// DeleteTeam обрабатывает DELETE /teams/{teamID}
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParamInt(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team id")
		return
	}

	if err := h.teamUseCase.DeleteTeam(r.Context(), teamID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// JoinTeam обрабатывает POST /teams/join
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.JoinTeamRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if req.UserID <= 0 || req.Code == "" {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "user_id and code are required")
		return
	}

	team, err := h.teamUseCase.JoinTeam(r.Context(), req.UserID, req.Code)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTO(team))
}
