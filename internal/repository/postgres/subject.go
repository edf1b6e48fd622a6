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

// SubjectRepository реализует repository.SubjectRepository для PostgreSQL
type SubjectRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectRepository создает новый репозиторий предметов
func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

// Create создает новый предмет и заполняет его ID
func (r *SubjectRepository) Create(ctx context.Context, subject *entity.Subject) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO subjects (team_id, title, subject_info, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query,
		subject.TeamID,
		subject.Title,
		subject.SubjectInfo,
		subject.Status.String(),
	).Scan(&subject.ID)

	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}

	return nil
}

// GetByID возвращает предмет вместе с его заданиями
func (r *SubjectRepository) GetByID(ctx context.Context, subjectID int) (*entity.Subject, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, team_id, title, subject_info, status
		FROM subjects
		WHERE id = $1
	`

	var subject entity.Subject
	var status string
	err := conn.QueryRow(ctx, query, subjectID).Scan(
		&subject.ID,
		&subject.TeamID,
		&subject.Title,
		&subject.SubjectInfo,
		&status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	subject.Status, err = entity.ParseSubjectStatus(status)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subject status: %w", err)
	}

	subject.Tasks, err = scanTasks(ctx, conn, `
		SELECT id, subject_id, name, description, deadline
		FROM tasks
		WHERE subject_id = $1
		ORDER BY deadline ASC NULLS FIRST
	`, subjectID)
	if err != nil {
		return nil, err
	}

	return &subject, nil
}

// GetByTeam возвращает все предметы команды вместе с заданиями
func (r *SubjectRepository) GetByTeam(ctx context.Context, teamID int) ([]*entity.Subject, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, team_id, title, subject_info, status
		FROM subjects
		WHERE team_id = $1
		ORDER BY title
	`

	rows, err := conn.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects by team: %w", err)
	}
	defer rows.Close()

	var subjects []*entity.Subject
	for rows.Next() {
		var subject entity.Subject
		var status string
		err := rows.Scan(
			&subject.ID,
			&subject.TeamID,
			&subject.Title,
			&subject.SubjectInfo,
			&status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}

		subject.Status, err = entity.ParseSubjectStatus(status)
		if err != nil {
			return nil, fmt.Errorf("failed to parse subject status: %w", err)
		}

		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subjects: %w", err)
	}

	for _, subject := range subjects {
		subject.Tasks, err = scanTasks(ctx, conn, `
			SELECT id, subject_id, name, description, deadline
			FROM tasks
			WHERE subject_id = $1
			ORDER BY deadline ASC NULLS FIRST
		`, subject.ID)
		if err != nil {
			return nil, err
		}
	}

	return subjects, nil
}

// Update обновляет предмет
func (r *SubjectRepository) Update(ctx context.Context, subject *entity.Subject) error {
	conn := getConn(ctx, r.pool)

	query := `
		UPDATE subjects
		SET title = $2, subject_info = $3, status = $4
		WHERE id = $1
	`

	result, err := conn.Exec(ctx, query,
		subject.ID,
		subject.Title,
		subject.SubjectInfo,
		subject.Status.String(),
	)

	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// Delete удаляет предмет вместе с заданиями, сдачами и записями о файлах (каскад в схеме)
func (r *SubjectRepository) Delete(ctx context.Context, subjectID int) error {
	conn := getConn(ctx, r.pool)

	query := `
		DELETE FROM subjects WHERE id = $1
	`

	result, err := conn.Exec(ctx, query, subjectID)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}
