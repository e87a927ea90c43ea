package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")
	ErrWrongPortal        = fmt.Errorf("роль пользователя не допускается в этот портал")
	ErrAccountLocked      = fmt.Errorf("слишком много неудачных попыток входа, повторите позже")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound    = fmt.Errorf("запись не найдена")
	ErrBadRequest  = fmt.Errorf("неверный запрос")
	ErrValidation  = fmt.Errorf("ошибка валидации")
	ErrConflict    = fmt.Errorf("конфликт данных")
	ErrTransaction = fmt.Errorf("ошибка транзакции")
)

// HttpError несёт код ответа вместе с сообщением для клиента.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: message, Err: ErrBadRequest}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

// NotFoundError - запись с указанным ID отсутствует.
type NotFoundError struct {
	Entity string
	ID     uint64
}

func NewNotFoundError(entity string, id uint64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s #%d не найден(а)", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ReferenceError - ссылка на несуществующего пациента или блюдо.
// Для вызывающего кода это тот же NotFound.
type ReferenceError struct {
	Entity string
	Err    error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("ссылка на несуществующую запись: %s", e.Entity)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrNotFound }

func (e *ReferenceError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("поле '%s': %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransactionError - транзакция откатилась, данные не изменены.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: транзакция отменена: %v", e.Op, e.Err)
}

func (e *TransactionError) Is(target error) bool { return target == ErrTransaction }

func (e *TransactionError) Unwrap() error { return e.Err }
