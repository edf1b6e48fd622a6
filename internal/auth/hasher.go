package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher определяет одностороннее хеширование паролей.
// Алгоритм скрыт за интерфейсом и может быть заменен без правки сервисов.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// BcryptHasher реализует PasswordHasher через bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создает хешер с указанной стоимостью.
// При cost вне допустимого диапазона используется bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash возвращает bcrypt-хеш пароля
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify проверяет пароль против хеша
func (h *BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
