package models

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// numericInput matches what the price and size inputs accept: digits with at most one dot
var numericInput = regexp.MustCompile(`^([0-9]+\.?[0-9]*|\.[0-9]+)$`)

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Report fields by their json names so errors match the form inputs
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("numericinput", func(fl validator.FieldLevel) bool {
		return numericInput.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("positiveint", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(strings.TrimSpace(fl.Field().String()))
		return err == nil && n > 0
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		_, err := ParseCategory(fl.Field().String())
		return err == nil
	})
}

// ValidationError is a form error caught before any backend call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError converts the first failed binding rule into a ValidationError.
// Errors that are not validation failures are returned unchanged.
func NewValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field(), Message: ruleMessage(fe.Tag())}
}

func ruleMessage(tag string) string {
	switch tag {
	case "required", "notblank":
		return "is required"
	case "numericinput":
		return "must be a number"
	case "positiveint":
		return "must be a positive whole number"
	case "category":
		return "must be one of men, women, girls, boys"
	case "base64|datauri":
		return "must be a base64 encoded image"
	default:
		return "is invalid"
	}
}

// validateForm runs the binding rules of a form outside of a request
func validateForm(form interface{}) error {
	if err := binding.Validator.ValidateStruct(form); err != nil {
		return NewValidationError(err)
	}
	return nil
}
