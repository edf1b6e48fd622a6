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

// TaskRepository реализует repository.TaskRepository для PostgreSQL
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository создает новый репозиторий заданий
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// Create создает новое задание и заполняет его ID
func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO tasks (subject_id, name, description, deadline)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query,
		task.SubjectID,
		task.Name,
		task.Description,
		task.Deadline,
	).Scan(&task.ID)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

// GetByID возвращает задание по ID
func (r *TaskRepository) GetByID(ctx context.Context, taskID int) (*entity.Task, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, subject_id, name, description, deadline
		FROM tasks
		WHERE id = $1
	`

	var task entity.Task
	err := conn.QueryRow(ctx, query, taskID).Scan(
		&task.ID,
		&task.SubjectID,
		&task.Name,
		&task.Description,
		&task.Deadline,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &task, nil
}

// GetBySubject возвращает задания предмета, отсортированные по сроку сдачи.
// Задания без срока идут первыми.
func (r *TaskRepository) GetBySubject(ctx context.Context, subjectID int) ([]*entity.Task, error) {
	conn := getConn(ctx, r.pool)

	return scanTasks(ctx, conn, `
		SELECT id, subject_id, name, description, deadline
		FROM tasks
		WHERE subject_id = $1
		ORDER BY deadline ASC NULLS FIRST
	`, subjectID)
}

// GetByTeam возвращает задания всех предметов команды, отсортированные по сроку сдачи.
// Задания без срока идут первыми.
func (r *TaskRepository) GetByTeam(ctx context.Context, teamID int) ([]*entity.Task, error) {
	conn := getConn(ctx, r.pool)

	return scanTasks(ctx, conn, `
		SELECT t.id, t.subject_id, t.name, t.description, t.deadline
		FROM tasks t
		JOIN subjects s ON s.id = t.subject_id
		WHERE s.team_id = $1
		ORDER BY t.deadline ASC NULLS FIRST
	`, teamID)
}

// Update обновляет задание
func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	conn := getConn(ctx, r.pool)

	query := `
		UPDATE tasks
		SET name = $2, description = $3, deadline = $4
		WHERE id = $1
	`

	result, err := conn.Exec(ctx, query,
		task.ID,
		task.Name,
		task.Description,
		task.Deadline,
	)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// Delete удаляет задание вместе со сдачами (каскад в схеме)
func (r *TaskRepository) Delete(ctx context.Context, taskID int) error {
	conn := getConn(ctx, r.pool)

	query := `
		DELETE FROM tasks WHERE id = $1
	`

	result, err := conn.Exec(ctx, query, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// scanTasks выполняет запрос на выборку заданий и сканирует строки
func scanTasks(ctx context.Context, conn querier, query string, args ...interface{}) ([]*entity.Task, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		var task entity.Task
		err := rows.Scan(
			&task.ID,
			&task.SubjectID,
			&task.Name,
			&task.Description,
			&task.Deadline,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}
