package validation

import (
	"strings"
	"time"

	"hospital-meals/internal/entities"

	"github.com/go-playground/validator/v10"
)

const isoDateLayout = "2006-01-02"

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("iso_date", isISODate); err != nil {
		return err
	}
	if err := v.RegisterValidation("not_blank", isNotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_status", isOrderStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("tiffin_status", isTiffinStatus); err != nil {
		return err
	}
	return nil
}

// isISODate - календарная дата вида 2024-05-31
func isISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(isoDateLayout, fl.Field().String())
	return err == nil
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isOrderStatus(fl validator.FieldLevel) bool {
	_, ok := entities.ParseOrderStatus(fl.Field().String())
	return ok
}

func isTiffinStatus(fl validator.FieldLevel) bool {
	_, ok := entities.ParseTiffinStatus(fl.Field().String())
	return ok
}
