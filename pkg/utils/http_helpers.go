package utils

import (
	"strconv"

	apperrors "hospital-meals/pkg/errors"

	"github.com/labstack/echo/v4"
)

// ParseIDParam читает положительный числовой параметр пути.
func ParseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError(name, "ожидается положительное целое число")
	}
	return id, nil
}

// QueryInt читает необязательный числовой query-параметр. Отсутствие даёт 0.
func QueryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError(name, "ожидается неотрицательное целое число")
	}
	return n, nil
}
