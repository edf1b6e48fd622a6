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

// TeamRepository реализует repository.TeamRepository для PostgreSQL
type TeamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository создает новый репозиторий команд
func NewTeamRepository(pool *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{pool: pool}
}

// Create создает новую команду и заполняет ее ID.
// Возвращает ErrAlreadyExists при совпадении кода приглашения.
func (r *TeamRepository) Create(ctx context.Context, team *entity.Team) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO teams (name, code, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query, team.Name, team.Code, team.OwnerID).Scan(&team.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

// GetByID возвращает команду по ID
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*entity.Team, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, name, code, owner_id
		FROM teams
		WHERE id = $1
	`

	var team entity.Team
	err := conn.QueryRow(ctx, query, teamID).Scan(
		&team.ID,
		&team.Name,
		&team.Code,
		&team.OwnerID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return &team, nil
}

// GetByCode возвращает команду по коду приглашения
func (r *TeamRepository) GetByCode(ctx context.Context, code string) (*entity.Team, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, name, code, owner_id
		FROM teams
		WHERE code = $1
	`

	var team entity.Team
	err := conn.QueryRow(ctx, query, code).Scan(
		&team.ID,
		&team.Name,
		&team.Code,
		&team.OwnerID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team by code: %w", err)
	}

	return &team, nil
}

// GetByUser возвращает все команды, в которых состоит пользователь
func (r *TeamRepository) GetByUser(ctx context.Context, userID int) ([]*entity.Team, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT t.id, t.name, t.code, t.owner_id
		FROM teams t
		JOIN teammembers tm ON tm.team_id = t.id
		WHERE tm.user_id = $1
		ORDER BY t.name
	`

	rows, err := conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teams by user: %w", err)
	}
	defer rows.Close()

	var teams []*entity.Team
	for rows.Next() {
		var team entity.Team
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.Code,
			&team.OwnerID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, &team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}

	return teams, nil
}

// Delete удаляет команду вместе с членствами и предметами (каскад в схеме)
func (r *TeamRepository) Delete(ctx context.Context, teamID int) error {
	conn := getConn(ctx, r.pool)

	query := `
		DELETE FROM teams WHERE id = $1
	`

	result, err := conn.Exec(ctx, query, teamID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}
