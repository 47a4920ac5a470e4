package httpx

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// alphanum_mixed requires at least one letter and one digit.
	_ = v.RegisterValidation("alphanum_mixed", func(fl validator.FieldLevel) bool {
		var letter, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLetter(r):
				letter = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return letter && digit
	})

	return &Validator{validate: v}
}

func (v *Validator) Validate(target any) error {
	return v.validate.Struct(target)
}
