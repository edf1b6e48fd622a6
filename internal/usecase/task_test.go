package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
)

func newTestTaskUseCase(t *testing.T) (*TaskUseCase, int) {
	t.Helper()

	subjectRepo := newFakeSubjectRepo()
	subject := &entity.Subject{TeamID: 1, Title: "Математичний аналіз", Status: entity.SubjectExam}
	require.NoError(t, subjectRepo.Create(context.Background(), subject))

	taskRepo := newFakeTaskRepo()
	taskRepo.subjects = subjectRepo

	return NewTaskUseCase(taskRepo, subjectRepo), subject.ID
}

func TestCreateTask_UnknownSubject(t *testing.T) {
	uc, _ := newTestTaskUseCase(t)

	_, err := uc.CreateTask(context.Background(), 999, "Лабораторна 1", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestCreateTask_EmptyName(t *testing.T) {
	uc, subjectID := newTestTaskUseCase(t)

	_, err := uc.CreateTask(context.Background(), subjectID, "  ", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidInput)
}

func TestGetSubjectTasks_NoDeadlineFirst(t *testing.T) {
	uc, subjectID := newTestTaskUseCase(t)

	near := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	far := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.CreateTask(context.Background(), subjectID, "Пізній дедлайн", nil, &far)
	require.NoError(t, err)
	_, err = uc.CreateTask(context.Background(), subjectID, "Без дедлайну", nil, nil)
	require.NoError(t, err)
	_, err = uc.CreateTask(context.Background(), subjectID, "Ранній дедлайн", nil, &near)
	require.NoError(t, err)

	tasks, err := uc.GetSubjectTasks(context.Background(), subjectID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Без дедлайну", tasks[0].Name)
	assert.Equal(t, "Ранній дедлайн", tasks[1].Name)
	assert.Equal(t, "Пізній дедлайн", tasks[2].Name)
}

func TestGetTeamTasks_AcrossSubjectsNoDeadlineFirst(t *testing.T) {
	subjectRepo := newFakeSubjectRepo()
	analysis := &entity.Subject{TeamID: 1, Title: "Математичний аналіз", Status: entity.SubjectExam}
	require.NoError(t, subjectRepo.Create(context.Background(), analysis))
	algebra := &entity.Subject{TeamID: 1, Title: "Лінійна алгебра", Status: entity.SubjectTest}
	require.NoError(t, subjectRepo.Create(context.Background(), algebra))
	foreign := &entity.Subject{TeamID: 2, Title: "Чужий предмет", Status: entity.SubjectTest}
	require.NoError(t, subjectRepo.Create(context.Background(), foreign))

	taskRepo := newFakeTaskRepo()
	taskRepo.subjects = subjectRepo
	uc := NewTaskUseCase(taskRepo, subjectRepo)

	near := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	far := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.CreateTask(context.Background(), analysis.ID, "Пізній дедлайн", nil, &far)
	require.NoError(t, err)
	_, err = uc.CreateTask(context.Background(), algebra.ID, "Без дедлайну", nil, nil)
	require.NoError(t, err)
	_, err = uc.CreateTask(context.Background(), algebra.ID, "Ранній дедлайн", nil, &near)
	require.NoError(t, err)
	_, err = uc.CreateTask(context.Background(), foreign.ID, "Чуже завдання", nil, nil)
	require.NoError(t, err)

	tasks, err := uc.GetTeamTasks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "Без дедлайну", tasks[0].Name)
	assert.Equal(t, "Ранній дедлайн", tasks[1].Name)
	assert.Equal(t, "Пізній дедлайн", tasks[2].Name)
}

func TestGetTeamTasks_EmptyTeam(t *testing.T) {
	subjectRepo := newFakeSubjectRepo()
	taskRepo := newFakeTaskRepo()
	taskRepo.subjects = subjectRepo
	uc := NewTaskUseCase(taskRepo, subjectRepo)

	tasks, err := uc.GetTeamTasks(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestUpdateTask_ClearsDeadline(t *testing.T) {
	uc, subjectID := newTestTaskUseCase(t)

	deadline := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	task, err := uc.CreateTask(context.Background(), subjectID, "Лабораторна 1", nil, &deadline)
	require.NoError(t, err)

	require.NoError(t, uc.UpdateTask(context.Background(), task.ID, "Лабораторна 1", nil, nil))

	updated, err := uc.GetTaskByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Deadline)
}

func TestDeleteTask_Unknown(t *testing.T) {
	uc, _ := newTestTaskUseCase(t)

	err := uc.DeleteTask(context.Background(), 999)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}
