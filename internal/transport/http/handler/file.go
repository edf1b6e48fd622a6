package handler

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/dto"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

// FileHandler обрабатывает запросы для файлов предметов
type FileHandler struct {
	fileUseCase *usecase.SubjectFileUseCase
}

// NewFileHandler создает новый handler для файлов
func NewFileHandler(fileUseCase *usecase.SubjectFileUseCase) *FileHandler {
	return &FileHandler{fileUseCase: fileUseCase}
}

// UploadFile обрабатывает POST /subjects/{subjectID}/files (multipart/form-data, поле "file")
func (h *FileHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := urlParamInt(r, "subjectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid subject id")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "file form field is required")
		return
	}
	defer part.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file, err := h.fileUseCase.UploadFile(r.Context(), usecase.UploadFileRequest{
		SubjectID:   subjectID,
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Content:     part,
	})
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToSubjectFileDTO(file))
}

// GetSubjectFiles обрабатывает GET /subjects/{subjectID}/files
func (h *FileHandler) GetSubjectFiles(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := urlParamInt(r, "subjectID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid subject id")
		return
	}

	files, err := h.fileUseCase.GetSubjectFiles(r.Context(), subjectID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToSubjectFileDTOs(files))
}

// DownloadFile обрабатывает GET /files/{fileID}
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	fileID, ok := urlParamInt(r, "fileID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid file id")
		return
	}

	file, content, err := h.fileUseCase.DownloadFile(r.Context(), fileID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}
	defer content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.DisplayName})

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", file.Size))

	if _, err := io.Copy(w, content); err != nil {
		// Заголовки уже отправлены, статус менять поздно
		return
	}
}

// DeleteFile обрабатывает DELETE /files/{fileID}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID, ok := urlParamInt(r, "fileID")
	if !ok {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid file id")
		return
	}

	if err := h.fileUseCase.DeleteFile(r.Context(), fileID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
