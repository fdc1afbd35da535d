package services

import "errors"

// Ошибки аутентификации и учетных записей. Доменные отказы (регистрация, команды,
// оценки) приходят из пакета apperrors.
var (
	ErrValidationFailed     = errors.New("validation failed")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrUsernameRequired     = errors.New("username is required")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAuthenticationFailed = errors.New("authentication failed")

	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username is already in use")

	ErrUploadUnavailable = errors.New("file storage is not configured")
)

const minPasswordLength = 8
