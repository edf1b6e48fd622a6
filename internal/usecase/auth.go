package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/auth"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository"
)

// AuthUseCase реализует регистрацию и вход пользователей
type AuthUseCase struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
}

// NewAuthUseCase создает новый usecase аутентификации
func NewAuthUseCase(userRepo repository.UserRepository, hasher auth.PasswordHasher) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// Register создает нового пользователя.
// Пользователь с таким же именем и фамилией может существовать только один.
func (uc *AuthUseCase) Register(ctx context.Context, firstname, lastname, password string) (*entity.User, error) {
	firstname = strings.TrimSpace(firstname)
	lastname = strings.TrimSpace(lastname)

	if firstname == "" || lastname == "" || password == "" {
		return nil, domainErrors.NewDomainError(
			"INVALID_INPUT",
			"firstname, lastname and password are required",
			domainErrors.ErrInvalidInput,
		)
	}

	hashed, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Firstname: firstname,
		Lastname:  lastname,
		Password:  hashed,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Гонка двух регистраций разрешается уникальным индексом в базе
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.NewDomainError(
				"USER_EXISTS",
				"user with this name already exists",
				domainErrors.ErrAlreadyExists,
			)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login проверяет учетные данные и возвращает пользователя.
// Неизвестное имя и неверный пароль дают одну и ту же ошибку.
func (uc *AuthUseCase) Login(ctx context.Context, firstname, lastname, password string) (*entity.User, error) {
	user, err := uc.userRepo.GetByName(ctx, firstname, lastname)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !uc.hasher.Verify(password, user.Password) {
		return nil, invalidCredentials()
	}

	return user, nil
}

// UserExists проверяет существование пользователя с таким именем и фамилией
func (uc *AuthUseCase) UserExists(ctx context.Context, firstname, lastname string) (bool, error) {
	exists, err := uc.userRepo.Exists(ctx, firstname, lastname)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// invalidCredentials возвращает единую ошибку входа без указания причины
func invalidCredentials() error {
	return domainErrors.NewDomainError(
		"INVALID_CREDENTIALS",
		"invalid credentials",
		domainErrors.ErrInvalidCredentials,
	)
}
