package handler

import (
	"encoding/json"
	"net/http"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/dto"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

// NewAuthHandler создает новый handler аутентификации
func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

// Register обрабатывает POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	user, err := h.authUseCase.Register(r.Context(), req.Firstname, req.Lastname, req.Password)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToUserDTO(user))
}

// Login обрабатывает POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	user, err := h.authUseCase.Login(r.Context(), req.Firstname, req.Lastname, req.Password)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToUserDTO(user))
}
