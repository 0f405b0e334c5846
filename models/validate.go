package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"food-catalog-api/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so messages match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (in RegisterInput) Validate() []apperr.FieldError {
	return fieldErrors(validate.Struct(in), "")
}

func (in LoginInput) Validate() []apperr.FieldError {
	return fieldErrors(validate.Struct(in), "")
}

func (in RestaurantInput) Validate() []apperr.FieldError {
	return fieldErrors(validate.Struct(in), "")
}

func (p RestaurantPatch) Validate() []apperr.FieldError {
	return fieldErrors(validate.Struct(p), "")
}

// ValidateBatch validates every record and prefixes each field with its index in the batch
func ValidateBatch(in []RestaurantInput) []apperr.FieldError {
	if len(in) == 0 {
		return []apperr.FieldError{{Field: "restaurants", Message: "at least one restaurant is required"}}
	}
	var all []apperr.FieldError
	for i, r := range in {
		all = append(all, fieldErrors(validate.Struct(r), fmt.Sprintf("[%d].", i))...)
	}
	return all
}

func fieldErrors(err error, prefix string) []apperr.FieldError {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperr.FieldError{{Field: strings.TrimSuffix(prefix, "."), Message: err.Error()}}
	}
	out := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		// drop the struct name, keep the JSON path
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		out = append(out, apperr.FieldError{Field: prefix + field, Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			if fe.Param() == "1" {
				return name + " must not be empty"
			}
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %s check", name, fe.Tag())
	}
}
