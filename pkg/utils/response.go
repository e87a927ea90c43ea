package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "hospital-meals/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{Status: true, Body: body, Message: message})
}

func failure(c echo.Context, code int, message string, body interface{}) error {
	return c.JSON(code, &HTTPResponse{Status: false, Body: body, Message: message})
}

// ErrorResponse переводит ошибку приложения в HTTP-ответ.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}
		var body interface{}
		if httpErr.Details != nil {
			body = httpErr.Details
		}
		return failure(c, httpErr.Code, httpErr.Message, body)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return failure(c, http.StatusBadRequest, "Ошибка валидации: "+strings.Join(msgs, "; "), nil)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return failure(c, echoErr.Code, fmt.Sprint(echoErr.Message), nil)
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrBadRequest):
		return failure(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperrors.ErrNotFound):
		return failure(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperrors.ErrConflict):
		return failure(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, apperrors.ErrAccountLocked):
		return failure(c, http.StatusTooManyRequests, err.Error(), nil)
	case errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrWrongPortal):
		return failure(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrInvalidSigningMethod),
		errors.Is(err, apperrors.ErrUserIDNotFoundInContext):
		return failure(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, apperrors.ErrTransaction):
		logger.Error("Транзакция отменена", zap.Error(err))
		return failure(c, http.StatusInternalServerError, err.Error(), nil)
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return failure(c, http.StatusInternalServerError, "Внутренняя ошибка сервера", nil)
}
