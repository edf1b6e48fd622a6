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

func newTestSubmissionUseCase(t *testing.T) (*SubmissionUseCase, *fakeSubmissionRepo, int) {
	t.Helper()

	subjectRepo := newFakeSubjectRepo()
	subject := &entity.Subject{TeamID: 1, Title: "Математичний аналіз", Status: entity.SubjectExam}
	require.NoError(t, subjectRepo.Create(context.Background(), subject))

	taskRepo := newFakeTaskRepo()
	taskRepo.subjects = subjectRepo
	task := &entity.Task{SubjectID: subject.ID, Name: "Лабораторна 1"}
	require.NoError(t, taskRepo.Create(context.Background(), task))

	submissionRepo := newFakeSubmissionRepo()
	submissionRepo.tasks = taskRepo
	clock := time.Date(2025, 12, 7, 14, 54, 58, 0, time.UTC)
	uc := NewSubmissionUseCase(submissionRepo, taskRepo, func() time.Time { return clock })
	return uc, submissionRepo, task.ID
}

func TestToggleStatus_FirstToggleCreatesDone(t *testing.T) {
	uc, submissionRepo, taskID := newTestSubmissionUseCase(t)

	submission, err := uc.ToggleStatus(context.Background(), taskID, 5)
	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionDone, submission.Status)
	assert.Equal(t, time.Date(2025, 12, 7, 14, 54, 58, 0, time.UTC), submission.SubmittedAt)
	assert.Equal(t, 1, submissionRepo.count(taskID, 5))
}

func TestToggleStatus_FlipsBackAndForth(t *testing.T) {
	uc, submissionRepo, taskID := newTestSubmissionUseCase(t)

	first, err := uc.ToggleStatus(context.Background(), taskID, 5)
	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionDone, first.Status)

	second, err := uc.ToggleStatus(context.Background(), taskID, 5)
	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionWait, second.Status)

	third, err := uc.ToggleStatus(context.Background(), taskID, 5)
	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionDone, third.Status)

	// Повторные переключения не плодят отметок
	assert.Equal(t, 1, submissionRepo.count(taskID, 5))
}

func TestToggleStatus_UnknownTask(t *testing.T) {
	uc, _, _ := newTestSubmissionUseCase(t)

	_, err := uc.ToggleStatus(context.Background(), 999, 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestToggleStatus_IndependentPerUser(t *testing.T) {
	uc, _, taskID := newTestSubmissionUseCase(t)

	_, err := uc.ToggleStatus(context.Background(), taskID, 5)
	require.NoError(t, err)
	_, err = uc.ToggleStatus(context.Background(), taskID, 5)
	require.NoError(t, err)

	other, err := uc.ToggleStatus(context.Background(), taskID, 6)
	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionDone, other.Status)

	status, err := uc.GetUserTaskStatus(context.Background(), taskID, 5)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, entity.SubmissionWait, *status)
}

func TestToggleStatus_RaceOnFirstInsert(t *testing.T) {
	uc, submissionRepo, taskID := newTestSubmissionUseCase(t)

	// Конкурент успел вставить отметку между Get и Create
	require.NoError(t, submissionRepo.Create(context.Background(), &entity.Submission{
		TaskID:      taskID,
		UserID:      5,
		Status:      entity.SubmissionDone,
		SubmittedAt: time.Date(2025, 12, 7, 14, 0, 0, 0, time.UTC),
	}))
	submissionRepo.missOnGet = 1

	submission, err := uc.ToggleStatus(context.Background(), taskID, 5)
	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionWait, submission.Status)
	assert.Equal(t, 1, submissionRepo.count(taskID, 5))
}

func TestGetTeamTasksWithStatus_AbsentWithoutSubmission(t *testing.T) {
	uc, _, taskID := newTestSubmissionUseCase(t)

	_, err := uc.ToggleStatus(context.Background(), taskID, 5)
	require.NoError(t, err)

	// Для переключавшего пользователя статус и время заполнены
	tasks, err := uc.GetTeamTasksWithStatus(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Математичний аналіз", tasks[0].SubjectTitle)
	require.NotNil(t, tasks[0].CurrentStatus)
	assert.Equal(t, entity.SubmissionDone, *tasks[0].CurrentStatus)
	require.NotNil(t, tasks[0].SubmittedAt)
	assert.Equal(t, time.Date(2025, 12, 7, 14, 54, 58, 0, time.UTC), *tasks[0].SubmittedAt)

	// Для пользователя без отметки оба поля пусты
	tasks, err = uc.GetTeamTasksWithStatus(context.Background(), 1, 6)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].CurrentStatus)
	assert.Nil(t, tasks[0].SubmittedAt)
}

func TestGetUserTaskStatus_NilWithoutSubmission(t *testing.T) {
	uc, _, taskID := newTestSubmissionUseCase(t)

	status, err := uc.GetUserTaskStatus(context.Background(), taskID, 5)
	require.NoError(t, err)
	assert.Nil(t, status)
}
