package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phonePattern цифры, пробелы, дефисы, плюс и скобки
var phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)

// Result разобранный результат валидации структуры
type Result struct {
	Missing    []string // незаполненные обязательные поля (в порядке объявления)
	Violations []string // остальные нарушения в виде готовых сообщений
}

// OK true, если нарушений нет
func (r Result) OK() bool {
	return len(r.Missing) == 0 && len(r.Violations) == 0
}

// Validator обёртка над go-playground/validator с именами полей из json тегов
type Validator struct {
	validate *validator.Validate
}

// New создает валидатор с дополнительным правилом "phone"
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	// Ошибка регистрации возможна только при пустом теге
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: v}
}

// Struct проверяет s и собирает все нарушения за один проход
func (v *Validator) Struct(s interface{}) (Result, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return Result{}, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Result{}, fmt.Errorf("validation: %w", err)
	}

	var res Result
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			res.Missing = append(res.Missing, fe.Field())
			continue
		}
		res.Violations = append(res.Violations, message(fe))
	}
	return res, nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "gt":
		if fe.Param() == "0" {
			return fmt.Sprintf("%s must be positive", fe.Field())
		}
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		if fe.Param() == "0" {
			return fmt.Sprintf("%s must not be negative", fe.Field())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s has unsupported value %v (allowed: %s)", fe.Field(), fe.Value(), fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match format %s", fe.Field(), fe.Param())
	case "phone":
		return fmt.Sprintf("%s has invalid format", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
