package apperrors

import "fmt"

// BusinessError представляет нарушение бизнес-правила
// (неверная дата первого платежа, сущность не найдена по бизнес-ключу)
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// NewBusinessError создает новую бизнес-ошибку
func NewBusinessError(format string, args ...interface{}) *BusinessError {
	return &BusinessError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError представляет ошибку валидации входных данных:
// по одной записи на каждое невалидное поле
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid request fields"
}

// NewValidationError создает новую ошибку валидации
func NewValidationError(details map[string]string) *ValidationError {
	return &ValidationError{Details: details}
}

// ConflictError представляет нарушение ограничения уникальности
// на уровне хранилища
type ConflictError struct {
	Cause   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflictError создает новую ошибку конфликта
func NewConflictError(cause, message string) *ConflictError {
	return &ConflictError{Cause: cause, Message: message}
}

// AuthorizationError представляет несоответствие владельца:
// кредит существует, но принадлежит другому клиенту.
// Намеренно транслируется в ответ класса 5xx, а не 403/404.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NewAuthorizationError создает новую ошибку несоответствия владельца
func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}
