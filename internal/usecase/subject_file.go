package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/storage"
)

// UploadFileRequest описывает загружаемый файл
type UploadFileRequest struct {
	SubjectID   int
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// SubjectFileUseCase реализует бизнес-логику для файлов предметов
type SubjectFileUseCase struct {
	fileRepo    repository.SubjectFileRepository
	subjectRepo repository.SubjectRepository
	fileStorage storage.FileStorage
	now         func() time.Time
}

// NewSubjectFileUseCase создает новый usecase для файлов предметов
func NewSubjectFileUseCase(
	fileRepo repository.SubjectFileRepository,
	subjectRepo repository.SubjectRepository,
	fileStorage storage.FileStorage,
	now func() time.Time,
) *SubjectFileUseCase {
	if now == nil {
		now = time.Now
	}
	return &SubjectFileUseCase{
		fileRepo:    fileRepo,
		subjectRepo: subjectRepo,
		fileStorage: fileStorage,
		now:         now,
	}
}

// UploadFile сохраняет байты в хранилище и создает запись о файле.
// Запись не создается, пока байты не записаны; при сбое записи в базу
// сохраненный файл убирается, чтобы не оставлять ничейных байтов.
func (uc *SubjectFileUseCase) UploadFile(ctx context.Context, req UploadFileRequest) (*entity.SubjectFile, error) {
	if req.FileName == "" || req.Content == nil {
		return nil, domainErrors.NewDomainError(
			"INVALID_INPUT",
			"file name and content are required",
			domainErrors.ErrInvalidInput,
		)
	}

	if _, err := uc.subjectRepo.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, subjectNotFound()
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	storageName, err := uc.fileStorage.Save(ctx, req.Content, req.FileName, req.SubjectID)
	if err != nil {
		return nil, domainErrors.NewDomainError(
			"NOT_UPLOADED",
			"failed to store file",
			domainErrors.ErrNotUploaded,
		)
	}

	file := &entity.SubjectFile{
		SubjectID:   req.SubjectID,
		DisplayName: req.FileName,
		StorageName: storageName,
		ContentType: req.ContentType,
		Size:        req.Size,
		UploadedAt:  uc.now(),
	}

	if err := uc.fileRepo.Create(ctx, file); err != nil {
		if _, delErr := uc.fileStorage.Delete(ctx, storageName, req.SubjectID); delErr != nil {
			log.Printf("failed to delete stored file %s after db error: %v", storageName, delErr)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return file, nil
}

// GetSubjectFiles возвращает записи о файлах предмета, новые первыми
func (uc *SubjectFileUseCase) GetSubjectFiles(ctx context.Context, subjectID int) ([]*entity.SubjectFile, error) {
	files, err := uc.fileRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject files: %w", err)
	}

	if files == nil {
		files = []*entity.SubjectFile{}
	}

	return files, nil
}

// GetFileByID возвращает запись о файле по ID
func (uc *SubjectFileUseCase) GetFileByID(ctx context.Context, fileID int) (*entity.SubjectFile, error) {
	file, err := uc.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, fileNotFound()
		}
		return nil, fmt.Errorf("failed to get file record: %w", err)
	}
	return file, nil
}

// DownloadFile возвращает запись о файле и поток его содержимого.
// Отсутствие записи и отсутствие байтов неразличимы для вызывающего.
func (uc *SubjectFileUseCase) DownloadFile(ctx context.Context, fileID int) (*entity.SubjectFile, io.ReadCloser, error) {
	file, err := uc.GetFileByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	content, err := uc.fileStorage.Get(ctx, file.StorageName, file.SubjectID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil, fileNotFound()
		}
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}

	return file, content, nil
}

// DeleteFile удаляет байты из хранилища и запись о файле.
// Запись остается, если байты удалить не получилось.
func (uc *SubjectFileUseCase) DeleteFile(ctx context.Context, fileID int) error {
	file, err := uc.GetFileByID(ctx, fileID)
	if err != nil {
		return err
	}

	deleted, err := uc.fileStorage.Delete(ctx, file.StorageName, file.SubjectID)
	if err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	if !deleted {
		return fileNotFound()
	}

	if err := uc.fileRepo.Delete(ctx, fileID); err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

// fileNotFound возвращает доменную ошибку отсутствия файла
func fileNotFound() error {
	return domainErrors.NewDomainError(
		"NOT_FOUND",
		"file not found",
		domainErrors.ErrNotFound,
	)
}
