package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует доменные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("ru_phone", isRussianPhoneNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("inn", isValidINN); err != nil {
		return err
	}
	return nil
}

var phoneRegex = regexp.MustCompile(`^\+7\d{10}$`)

func isRussianPhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

var innRegex = regexp.MustCompile(`^\d{10}(\d{2})?$`)

// ИНН: 10 цифр у юрлица, 12 у физлица. Контрольные цифры не проверяем,
// данные приходят из проверенных источников.
func isValidINN(fl validator.FieldLevel) bool {
	return innRegex.MatchString(fl.Field().String())
}
