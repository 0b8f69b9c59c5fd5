package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"wastage-backend/internal/models"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get: custom kuralları kayıtlı tekil validator
func Get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// hata mesajlarında Go alan adı yerine json adı görünsün
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("wastage_unit", validateUnit)
		_ = v.RegisterValidation("wastage_reason", validateReason)
		_ = v.RegisterValidation("maxwords", validateMaxWords)
		_ = v.RegisterValidation("notblank", validateNotBlank)

		instance = v
	})
	return instance
}

func validateUnit(fl validator.FieldLevel) bool {
	return models.WastageUnit(fl.Field().String()).Valid()
}

func validateReason(fl validator.FieldLevel) bool {
	return models.WastageReason(fl.Field().String()).Valid()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// maxwords=200
func validateMaxWords(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(strings.Fields(fl.Field().String())) <= limit
}

// Struct: ilk hatayı okunur mesaja çevirir
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return errors.New(Message(verrs[0]))
}

func Message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s items", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have at most %s items", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "wastage_unit":
		return fmt.Sprintf("%s must be one of %s", field, joinUnits())
	case "wastage_reason":
		return fmt.Sprintf("%s must be one of %s", field, joinReasons())
	case "maxwords":
		return fmt.Sprintf("%s must be at most %s words", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

func joinUnits() string {
	out := make([]string, 0, len(models.WastageUnits))
	for _, u := range models.WastageUnits {
		out = append(out, string(u))
	}
	return strings.Join(out, ", ")
}

func joinReasons() string {
	out := make([]string, 0, len(models.WastageReasons))
	for _, r := range models.WastageReasons {
		out = append(out, string(r))
	}
	return strings.Join(out, ", ")
}
