package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
)

// SubmissionRepository реализует repository.SubmissionRepository для PostgreSQL
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository создает новый репозиторий сдач
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create создает отметку о сдаче и заполняет ее ID.
// Возвращает ErrAlreadyExists, если пара (task_id, user_id) уже занята.
func (r *SubmissionRepository) Create(ctx context.Context, submission *entity.Submission) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO submissions (task_id, user_id, status, submitted_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query,
		submission.TaskID,
		submission.UserID,
		submission.Status.String(),
		submission.SubmittedAt,
	).Scan(&submission.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

// Update обновляет статус и время сдачи
func (r *SubmissionRepository) Update(ctx context.Context, submission *entity.Submission) error {
	conn := getConn(ctx, r.pool)

	query := `
		UPDATE submissions
		SET status = $2, submitted_at = $3
		WHERE id = $1
	`

	result, err := conn.Exec(ctx, query,
		submission.ID,
		submission.Status.String(),
		submission.SubmittedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// Get возвращает отметку о сдаче по составному ключу
func (r *SubmissionRepository) Get(ctx context.Context, taskID, userID int) (*entity.Submission, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, task_id, user_id, status, submitted_at
		FROM submissions
		WHERE task_id = $1 AND user_id = $2
	`

	var submission entity.Submission
	var status string
	err := conn.QueryRow(ctx, query, taskID, userID).Scan(
		&submission.ID,
		&submission.TaskID,
		&submission.UserID,
		&status,
		&submission.SubmittedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	submission.Status, err = entity.ParseSubmissionStatus(status)
	if err != nil {
		return nil, fmt.Errorf("failed to parse submission status: %w", err)
	}

	return &submission, nil
}

// GetTeamTasksWithStatus возвращает все задания команды вместе со статусом сдачи
// конкретного пользователя. Задания без срока сдачи идут первыми.
func (r *SubmissionRepository) GetTeamTasksWithStatus(ctx context.Context, teamID, userID int) ([]*entity.TaskWithStatus, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT t.id, t.subject_id, s.title, t.name, t.description, t.deadline,
		       sub.status, sub.submitted_at
		FROM tasks t
		JOIN subjects s ON s.id = t.subject_id
		LEFT JOIN submissions sub ON sub.task_id = t.id AND sub.user_id = $2
		WHERE s.team_id = $1
		ORDER BY t.deadline ASC NULLS FIRST
	`

	rows, err := conn.Query(ctx, query, teamID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team tasks with status: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.TaskWithStatus
	for rows.Next() {
		var task entity.TaskWithStatus
		var status *string
		err := rows.Scan(
			&task.ID,
			&task.SubjectID,
			&task.SubjectTitle,
			&task.Name,
			&task.Description,
			&task.Deadline,
			&status,
			&task.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task with status: %w", err)
		}

		if status != nil {
			parsed, err := entity.ParseSubmissionStatus(*status)
			if err != nil {
				return nil, fmt.Errorf("failed to parse submission status: %w", err)
			}
			task.CurrentStatus = &parsed
		}

		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks with status: %w", err)
	}

	return tasks, nil
}
