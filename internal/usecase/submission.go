package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository"
)

// SubmissionUseCase реализует бизнес-логику для отметок о сдаче
type SubmissionUseCase struct {
	submissionRepo repository.SubmissionRepository
	taskRepo       repository.TaskRepository
	now            func() time.Time
}

// NewSubmissionUseCase создает новый usecase для сдач
func NewSubmissionUseCase(
	submissionRepo repository.SubmissionRepository,
	taskRepo repository.TaskRepository,
	now func() time.Time,
) *SubmissionUseCase {
	if now == nil {
		now = time.Now
	}
	return &SubmissionUseCase{
		submissionRepo: submissionRepo,
		taskRepo:       taskRepo,
		now:            now,
	}
}

// ToggleStatus переключает отметку пользователя о сдаче задания.
// Первое переключение создает отметку со статусом "done", дальнейшие
// переключают done и wait и обновляют время.
func (uc *SubmissionUseCase) ToggleStatus(ctx context.Context, taskID, userID int) (*entity.Submission, error) {
	if _, err := uc.taskRepo.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, taskNotFound()
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	submission, err := uc.submissionRepo.Get(ctx, taskID, userID)
	if err != nil && !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if submission == nil {
		submission = &entity.Submission{
			TaskID:      taskID,
			UserID:      userID,
			Status:      entity.SubmissionDone,
			SubmittedAt: uc.now(),
		}

		err := uc.submissionRepo.Create(ctx, submission)
		if err == nil {
			return submission, nil
		}
		// Конкурентное переключение успело вставить строку первым:
		// уникальный ключ запрещает дубликат, поэтому переключаем существующую
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, fmt.Errorf("failed to create submission: %w", err)
		}

		submission, err = uc.submissionRepo.Get(ctx, taskID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get submission: %w", err)
		}
	}

	submission.Status = submission.Status.Toggle()
	submission.SubmittedAt = uc.now()

	if err := uc.submissionRepo.Update(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}

	return submission, nil
}

// GetTeamTasksWithStatus возвращает задания команды со статусом сдачи пользователя
func (uc *SubmissionUseCase) GetTeamTasksWithStatus(ctx context.Context, teamID, userID int) ([]*entity.TaskWithStatus, error) {
	tasks, err := uc.submissionRepo.GetTeamTasksWithStatus(ctx, teamID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team tasks with status: %w", err)
	}

	if tasks == nil {
		tasks = []*entity.TaskWithStatus{}
	}

	return tasks, nil
}

// GetUserTaskStatus возвращает статус сдачи задания пользователем, nil без отметки
func (uc *SubmissionUseCase) GetUserTaskStatus(ctx context.Context, taskID, userID int) (*entity.SubmissionStatus, error) {
	submission, err := uc.submissionRepo.Get(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return &submission.Status, nil
}
