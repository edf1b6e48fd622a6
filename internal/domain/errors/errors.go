package errors

import "errors"

var (
	ErrNotFound           = errors.New("NOT_FOUND")
	ErrAlreadyExists      = errors.New("ALREADY_EXISTS")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrInvalidInput       = errors.New("INVALID_INPUT")
	ErrNotUploaded        = errors.New("NOT_UPLOADED")
)

// DomainError представляет доменную ошибку с кодом и сообщением
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError создает новую доменную ошибку
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
