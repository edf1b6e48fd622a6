package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/dto"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

// MemberHandler обрабатывает запросы для участников команд
type MemberHandler struct {
	memberUseCase *usecase.MemberUseCase
}

// NewMemberHandler создает новый handler для участников
func NewMemberHandler(memberUseCase *usecase.MemberUseCase) *MemberHandler {
	return &MemberHandler{memberUseCase: memberUseCase}
}

// GetTeamMembers обрабатывает GET /teams/{teamID}/members
func (h *MemberHandler) GetTeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParamInt(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team id")
		return
	}

	members, err := h.memberUseCase.GetTeamMembers(r.Context(), teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamMemberDTOs(members))
}

// UpdateMemberRole обрабатывает PUT /teams/{teamID}/members/role
func (h *MemberHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParamInt(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team id")
		return
	}

	var req dto.UpdateMemberRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "user_id is required")
		return
	}

	role, err := entity.ParseTeamMemberRole(req.Role)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "unknown member role")
		return
	}

	if err := h.memberUseCase.UpdateMemberRole(r.Context(), teamID, req.UserID, role); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveMember обрабатывает DELETE /teams/{teamID}/members/{userID}
func (h *MemberHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParamInt(r, "teamID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid team id")
		return
	}

	userID, ok := urlParamInt(r, "userID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid user id")
		return
	}

	if err := h.memberUseCase.RemoveMember(r.Context(), teamID, userID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
