package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/storage"
)

// SubjectUseCase реализует бизнес-логику для предметов
type SubjectUseCase struct {
	subjectRepo repository.SubjectRepository
	fileRepo    repository.SubjectFileRepository
	fileStorage storage.FileStorage
}

// NewSubjectUseCase создает новый usecase для предметов
func NewSubjectUseCase(
	subjectRepo repository.SubjectRepository,
	fileRepo repository.SubjectFileRepository,
	fileStorage storage.FileStorage,
) *SubjectUseCase {
	return &SubjectUseCase{
		subjectRepo: subjectRepo,
		fileRepo:    fileRepo,
		fileStorage: fileStorage,
	}
}

// CreateSubject создает предмет команды
func (uc *SubjectUseCase) CreateSubject(ctx context.Context, teamID int, title string, subjectInfo *string, status entity.SubjectStatus) (*entity.Subject, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domainErrors.NewDomainError(
			"INVALID_INPUT",
			"subject title is required",
			domainErrors.ErrInvalidInput,
		)
	}

	if _, err := entity.ParseSubjectStatus(status.String()); err != nil {
		return nil, domainErrors.NewDomainError(
			"INVALID_INPUT",
			"unknown subject status",
			domainErrors.ErrInvalidInput,
		)
	}

	subject := &entity.Subject{
		TeamID:      teamID,
		Title:       title,
		SubjectInfo: subjectInfo,
		Status:      status,
	}

	if err := uc.subjectRepo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("failed to create subject: %w", err)
	}

	return subject, nil
}

// GetSubjectByID возвращает предмет вместе с заданиями
func (uc *SubjectUseCase) GetSubjectByID(ctx context.Context, subjectID int) (*entity.Subject, error) {
	subject, err := uc.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, subjectNotFound()
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

// GetTeamSubjects возвращает предметы команды вместе с заданиями
func (uc *SubjectUseCase) GetTeamSubjects(ctx context.Context, teamID int) ([]*entity.Subject, error) {
	subjects, err := uc.subjectRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team subjects: %w", err)
	}

	if subjects == nil {
		subjects = []*entity.Subject{}
	}

	return subjects, nil
}

// UpdateSubject обновляет предмет
func (uc *SubjectUseCase) UpdateSubject(ctx context.Context, subjectID int, title string, subjectInfo *string, status entity.SubjectStatus) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domainErrors.NewDomainError(
			"INVALID_INPUT",
			"subject title is required",
			domainErrors.ErrInvalidInput,
		)
	}

	if _, err := entity.ParseSubjectStatus(status.String()); err != nil {
		return domainErrors.NewDomainError(
			"INVALID_INPUT",
			"unknown subject status",
			domainErrors.ErrInvalidInput,
		)
	}

	subject := &entity.Subject{
		ID:          subjectID,
		Title:       title,
		SubjectInfo: subjectInfo,
		Status:      status,
	}

	err := uc.subjectRepo.Update(ctx, subject)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return subjectNotFound()
		}
		return fmt.Errorf("failed to update subject: %w", err)
	}

	return nil
}

// DeleteSubject удаляет предмет вместе с заданиями, сдачами и файлами.
// Записи убирает каскад в базе, байты файлов удаляются из хранилища по одному.
func (uc *SubjectUseCase) DeleteSubject(ctx context.Context, subjectID int) error {
	files, err := uc.fileRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		return fmt.Errorf("failed to list subject files: %w", err)
	}

	err = uc.subjectRepo.Delete(ctx, subjectID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return subjectNotFound()
		}
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	// Записи уже удалены, поэтому ошибка удаления байтов не отменяет операцию
	for _, file := range files {
		if _, err := uc.fileStorage.Delete(ctx, file.StorageName, file.SubjectID); err != nil {
			log.Printf("failed to delete stored file %s: %v", file.StorageName, err)
		}
	}

	return nil
}

// subjectNotFound возвращает доменную ошибку отсутствия предмета
func subjectNotFound() error {
	return domainErrors.NewDomainError(
		"NOT_FOUND",
		"subject not found",
		domainErrors.ErrNotFound,
	)
}
