// Package forms backs every create/edit screen: typed form structs with
// validator tags, numeric coercion where an empty input means "absent"
// (an explicit *float64, never a NaN sentinel), and field error maps
// rendered inline next to the offending input.
package forms

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the process-wide validator with custom rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
			return ValidCPF(fl.Field().String())
		})
	})
	return validate
}

// Check validates a form struct and returns a field → message map,
// empty when the form is valid.
func Check(form any) map[string]string {
	errs := make(map[string]string)
	if err := Validator().Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok {
			for _, fe := range fieldErrs {
				errs[fe.Field()] = Message(fe)
			}
		} else {
			errs["_form"] = "dados inválidos"
		}
	}
	return errs
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = fieldErrs
	}
	return ok
}

// Message maps a validator tag to a user-facing message in pt-BR.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "min":
		return "valor abaixo do mínimo (" + fe.Param() + ")"
	case "max":
		return "valor acima do máximo (" + fe.Param() + ")"
	case "gte":
		return "deve ser maior ou igual a " + fe.Param()
	case "gt":
		return "deve ser maior que " + fe.Param()
	case "gtefield":
		return "deve ser maior ou igual ao campo base"
	case "oneof":
		return "valor não permitido"
	case "cpf":
		return "CPF inválido"
	default:
		return "valor inválido"
	}
}

// Amount coerces a currency/quantity input. Empty input yields nil (absent);
// both comma and dot decimal separators are accepted.
func Amount(raw string) (*float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, true
	}
	normalized := strings.ReplaceAll(trimmed, ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return nil, false
	}
	return &value, true
}

// RequiredAmount coerces a numeric input that must be present.
func RequiredAmount(raw string) (float64, bool) {
	value, ok := Amount(raw)
	if !ok || value == nil {
		return 0, false
	}
	return *value, true
}

// Day parses an HTML date input (2006-01-02). Empty input yields zero time.
func Day(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, true
	}
	day, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// OptionalString trims an input and returns nil for the empty string, so
// optional fields are sent to the backend as null instead of "".
func OptionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
