package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/sharesuki/internal/pkg/apperrors"
)

// Validation rule patterns
var (
	// Student identifier pattern - exactly 6 ASCII digits
	StudentIDPattern = `^[0-9]{6}$`

	// Optional numeric fields such as the attendance number
	DigitsPattern = `^[0-9]+$`

	// Name validation max length, matches the column width
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	StudentID *regexp.Regexp
	Digits    *regexp.Regexp
}{
	StudentID: regexp.MustCompile(StudentIDPattern),
	Digits:    regexp.MustCompile(DigitsPattern),
}

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names so messages match the request body.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("student_id", func(fl validator.FieldLevel) bool {
			return CompiledPatterns.StudentID.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			return CompiledPatterns.Digits.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// FieldCauses lets a request type map a field to a domain sentinel error.
type FieldCauses map[string]error

// ValidateStruct runs struct tags against v and converts failures into an
// apperrors.ValidationError. It returns nil when v is valid.
func ValidateStruct(v interface{}, causes FieldCauses) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	verr := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		field := fe.Field()
		if cause, ok := causes[field]; ok {
			verr.Add(field, cause)
			continue
		}
		verr.Add(field, errors.New(FormatFieldError(fe)))
	}
	return verr
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "notblank":
		return e.Field() + " is required"
	case "len":
		return e.Field() + " must be exactly " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "digits", "number":
		return e.Field() + " must contain digits only"
	case "student_id":
		return e.Field() + " must be exactly 6 digits"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
