package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/dto"
)

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// respondError отправляет ошибку в формате API
func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}

	json.NewEncoder(w).Encode(response)
}

// handleUseCaseError обрабатывает ошибки из usecase слоя
func handleUseCaseError(w http.ResponseWriter, err error) {
	var domainErr *domainErrors.DomainError
	if errors.As(err, &domainErr) {
		status := getStatusCodeByErrorCode(domainErr.Code)
		respondError(w, status, domainErr.Code, domainErr.Message)
		return
	}

	respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// getStatusCodeByErrorCode возвращает HTTP статус код по коду доменной ошибки
func getStatusCodeByErrorCode(code string) int {
	switch code {
	case "USER_EXISTS", "MEMBER_EXISTS":
		return http.StatusConflict
	case "NOT_FOUND":
		return http.StatusNotFound
	case "INVALID_CREDENTIALS":
		return http.StatusUnauthorized
	case "INVALID_INPUT":
		return http.StatusBadRequest
	case "NOT_UPLOADED":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// urlParamInt извлекает целочисленный параметр пути
func urlParamInt(r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// queryParamInt извлекает целочисленный параметр запроса
func queryParamInt(r *http.Request, name string) (int, bool) {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}
