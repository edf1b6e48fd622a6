package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository"
)

// TaskUseCase реализует бизнес-логику для заданий
type TaskUseCase struct {
	taskRepo    repository.TaskRepository
	subjectRepo repository.SubjectRepository
}

// NewTaskUseCase создает новый usecase для заданий
func NewTaskUseCase(taskRepo repository.TaskRepository, subjectRepo repository.SubjectRepository) *TaskUseCase {
	return &TaskUseCase{
		taskRepo:    taskRepo,
		subjectRepo: subjectRepo,
	}
}

// CreateTask создает задание по предмету
func (uc *TaskUseCase) CreateTask(ctx context.Context, subjectID int, name string, description *string, deadline *time.Time) (*entity.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainErrors.NewDomainError(
			"INVALID_INPUT",
			"task name is required",
			domainErrors.ErrInvalidInput,
		)
	}

	if _, err := uc.subjectRepo.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, subjectNotFound()
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	task := &entity.Task{
		SubjectID:   subjectID,
		Name:        name,
		Description: description,
		Deadline:    deadline,
	}

	if err := uc.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// GetTaskByID возвращает задание по ID
func (uc *TaskUseCase) GetTaskByID(ctx context.Context, taskID int) (*entity.Task, error) {
	task, err := uc.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, taskNotFound()
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// GetSubjectTasks возвращает задания предмета, без срока сдачи первыми
func (uc *TaskUseCase) GetSubjectTasks(ctx context.Context, subjectID int) ([]*entity.Task, error) {
	tasks, err := uc.taskRepo.GetBySubject(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject tasks: %w", err)
	}

	if tasks == nil {
		tasks = []*entity.Task{}
	}

	return tasks, nil
}

// GetTeamTasks возвращает задания всех предметов команды, без срока сдачи первыми
func (uc *TaskUseCase) GetTeamTasks(ctx context.Context, teamID int) ([]*entity.Task, error) {
	tasks, err := uc.taskRepo.GetByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team tasks: %w", err)
	}

	if tasks == nil {
		tasks = []*entity.Task{}
	}

	return tasks, nil
}

// UpdateTask обновляет задание
func (uc *TaskUseCase) UpdateTask(ctx context.Context, taskID int, name string, description *string, deadline *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domainErrors.NewDomainError(
			"INVALID_INPUT",
			"task name is required",
			domainErrors.ErrInvalidInput,
		)
	}

	task := &entity.Task{
		ID:          taskID,
		Name:        name,
		Description: description,
		Deadline:    deadline,
	}

	err := uc.taskRepo.Update(ctx, task)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return taskNotFound()
		}
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

// DeleteTask удаляет задание вместе со сдачами (каскад в базе)
func (uc *TaskUseCase) DeleteTask(ctx context.Context, taskID int) error {
	err := uc.taskRepo.Delete(ctx, taskID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return taskNotFound()
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// taskNotFound возвращает доменную ошибку отсутствия задания
func taskNotFound() error {
	return domainErrors.NewDomainError(
		"NOT_FOUND",
		"task not found",
		domainErrors.ErrNotFound,
	)
}
