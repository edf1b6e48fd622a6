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

// SubjectFileRepository реализует repository.SubjectFileRepository для PostgreSQL
type SubjectFileRepository struct {
	pool *pgxpool.Pool
}

// NewSubjectFileRepository создает новый репозиторий записей о файлах
func NewSubjectFileRepository(pool *pgxpool.Pool) *SubjectFileRepository {
	return &SubjectFileRepository{pool: pool}
}

// Create создает запись о файле и заполняет ее ID
func (r *SubjectFileRepository) Create(ctx context.Context, file *entity.SubjectFile) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO subjectfiles (subject_id, display_name, storage_name, content_type, size, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query,
		file.SubjectID,
		file.DisplayName,
		file.StorageName,
		file.ContentType,
		file.Size,
		file.UploadedAt,
	).Scan(&file.ID)

	if err != nil {
		return fmt.Errorf("failed to create subject file: %w", err)
	}

	return nil
}

// GetByID возвращает запись о файле по ID
func (r *SubjectFileRepository) GetByID(ctx context.Context, fileID int) (*entity.SubjectFile, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, subject_id, display_name, storage_name, content_type, size, uploaded_at
		FROM subjectfiles
		WHERE id = $1
	`

	var file entity.SubjectFile
	err := conn.QueryRow(ctx, query, fileID).Scan(
		&file.ID,
		&file.SubjectID,
		&file.DisplayName,
		&file.StorageName,
		&file.ContentType,
		&file.Size,
		&file.UploadedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subject file: %w", err)
	}

	return &file, nil
}

// GetBySubject возвращает записи о файлах предмета, новые первыми
func (r *SubjectFileRepository) GetBySubject(ctx context.Context, subjectID int) ([]*entity.SubjectFile, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, subject_id, display_name, storage_name, content_type, size, uploaded_at
		FROM subjectfiles
		WHERE subject_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := conn.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subject files: %w", err)
	}
	defer rows.Close()

	var files []*entity.SubjectFile
	for rows.Next() {
		var file entity.SubjectFile
		err := rows.Scan(
			&file.ID,
			&file.SubjectID,
			&file.DisplayName,
			&file.StorageName,
			&file.ContentType,
			&file.Size,
			&file.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subject file: %w", err)
		}
		files = append(files, &file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subject files: %w", err)
	}

	return files, nil
}

// Delete удаляет запись о файле
func (r *SubjectFileRepository) Delete(ctx context.Context, fileID int) error {
	conn := getConn(ctx, r.pool)

	query := `
		DELETE FROM subjectfiles WHERE id = $1
	`

	result, err := conn.Exec(ctx, query, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete subject file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}
