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

// MemberRepository реализует repository.MemberRepository для PostgreSQL
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository создает новый репозиторий членств
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

// Create создает членство пользователя в команде.
// Возвращает ErrAlreadyExists, если пара (team_id, user_id) уже занята.
func (r *MemberRepository) Create(ctx context.Context, member *entity.TeamMember) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO teammembers (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`

	_, err := conn.Exec(ctx, query, member.TeamID, member.UserID, member.Role.String())
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create team member: %w", err)
	}

	return nil
}

// Get возвращает членство по составному ключу
func (r *MemberRepository) Get(ctx context.Context, teamID, userID int) (*entity.TeamMember, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT team_id, user_id, role
		FROM teammembers
		WHERE team_id = $1 AND user_id = $2
	`

	var member entity.TeamMember
	var role string
	err := conn.QueryRow(ctx, query, teamID, userID).Scan(
		&member.TeamID,
		&member.UserID,
		&role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get team member: %w", err)
	}

	member.Role, err = entity.ParseTeamMemberRole(role)
	if err != nil {
		return nil, fmt.Errorf("failed to parse member role: %w", err)
	}

	return &member, nil
}

// GetByTeam возвращает всех участников команды с отображаемыми полями пользователя
func (r *MemberRepository) GetByTeam(ctx context.Context, teamID int) ([]*entity.TeamMemberInfo, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT tm.team_id, tm.user_id, tm.role, u.firstname, u.lastname
		FROM teammembers tm
		JOIN users u ON u.id = tm.user_id
		WHERE tm.team_id = $1
		ORDER BY u.lastname, u.firstname
	`

	rows, err := conn.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	var members []*entity.TeamMemberInfo
	for rows.Next() {
		var member entity.TeamMemberInfo
		var role string
		err := rows.Scan(
			&member.TeamID,
			&member.UserID,
			&role,
			&member.Firstname,
			&member.Lastname,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}

		member.Role, err = entity.ParseTeamMemberRole(role)
		if err != nil {
			return nil, fmt.Errorf("failed to parse member role: %w", err)
		}

		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team members: %w", err)
	}

	return members, nil
}

// UpdateRole изменяет роль участника команды
func (r *MemberRepository) UpdateRole(ctx context.Context, teamID, userID int, role entity.TeamMemberRole) error {
	conn := getConn(ctx, r.pool)

	query := `
		UPDATE teammembers
		SET role = $3
		WHERE team_id = $1 AND user_id = $2
	`

	result, err := conn.Exec(ctx, query, teamID, userID, role.String())
	if err != nil {
		return fmt.Errorf("failed to update member role: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}

// Delete удаляет членство пользователя в команде
func (r *MemberRepository) Delete(ctx context.Context, teamID, userID int) error {
	conn := getConn(ctx, r.pool)

	query := `
		DELETE FROM teammembers
		WHERE team_id = $1 AND user_id = $2
	`

	result, err := conn.Exec(ctx, query, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}

	return nil
}
