// Package validation wraps go-playground/validator with the storefront's
// custom rules and turns failures into per-field messages.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate

	egyptPhone = regexp.MustCompile(`^01[0125][0-9]{8}$`)
)

// Validate returns the shared validator, registering custom rules on first use.
func Validate() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(jsonName)
		_ = validate.RegisterValidation("eg_phone", validateEgyptPhone)
		_ = validate.RegisterValidation("no_xss", validateNoXSS)
	})
	return validate
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// validateEgyptPhone accepts Egyptian mobile numbers: 010, 011, 012 or 015
// followed by eight digits.
func validateEgyptPhone(fl validator.FieldLevel) bool {
	return egyptPhone.MatchString(fl.Field().String())
}

func validateNoXSS(fl validator.FieldLevel) bool {
	v := strings.ToLower(fl.Field().String())
	for _, p := range []string{"<script", "javascript:", "onerror=", "onload=", "<iframe"} {
		if strings.Contains(v, p) {
			return false
		}
	}
	return true
}

// FieldErrors maps a json field name to its messages.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Struct validates v and returns nil or the per-field messages.
func Struct(v any) FieldErrors {
	err := Validate().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": {err.Error()}}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "excluded_with":
		return "must be empty when " + fe.Param() + " is set"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be " + fe.Param() + " or more"
	case "lte":
		return "must be " + fe.Param() + " or less"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "email":
		return "must be a valid email"
	case "eg_phone":
		return "must be a valid Egyptian mobile number"
	case "no_xss":
		return "contains forbidden content"
	}
	return "is invalid"
}
