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

// UserRepository реализует repository.UserRepository для PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create создает нового пользователя и заполняет его ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	conn := getConn(ctx, r.pool)

	query := `
		INSERT INTO users (firstname, lastname, password)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := conn.QueryRow(ctx, query, user.Firstname, user.Lastname, user.Password).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID int) (*entity.User, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, firstname, lastname, password
		FROM users
		WHERE id = $1
	`

	var user entity.User
	err := conn.QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Firstname,
		&user.Lastname,
		&user.Password,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByName возвращает пользователя по имени и фамилии
func (r *UserRepository) GetByName(ctx context.Context, firstname, lastname string) (*entity.User, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT id, firstname, lastname, password
		FROM users
		WHERE firstname = $1 AND lastname = $2
	`

	var user entity.User
	err := conn.QueryRow(ctx, query, firstname, lastname).Scan(
		&user.ID,
		&user.Firstname,
		&user.Lastname,
		&user.Password,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	return &user, nil
}

// Exists проверяет существование пользователя с таким именем и фамилией
func (r *UserRepository) Exists(ctx context.Context, firstname, lastname string) (bool, error) {
	conn := getConn(ctx, r.pool)

	query := `
		SELECT EXISTS(SELECT 1 FROM users WHERE firstname = $1 AND lastname = $2)
	`

	var exists bool
	err := conn.QueryRow(ctx, query, firstname, lastname).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
