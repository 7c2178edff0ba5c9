package actions

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/go-playground/validator.v9"

	"github.com/aretw0/sfsweb/pkg/domain"
)

// messageTag holds the user-facing message for a failed field.
const messageTag = "msg"

var validate = newValidator()

// validateNotBlank rejects empty and whitespace-only strings.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		panic(fmt.Sprintf("actions: failed to register notblank validation: %v", err))
	}
	return v
}

// check validates in and converts the first failure into a ValidationError.
// Fields are checked in declaration order.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	first := errs[0]
	msg := first.Field() + " failed " + first.Tag()
	if f, ok := reflect.Indirect(reflect.ValueOf(in)).Type().FieldByName(first.StructField()); ok {
		if m := f.Tag.Get(messageTag); m != "" {
			msg = m
		}
	}
	return &domain.ValidationError{Field: first.Field(), Message: msg}
}
