package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FormValidator evaluates the declarative struct-tag rules on a form and
// returns the violations as an Errors set keyed by the form field names.
type FormValidator struct {
	v *validator.Validate
}

// NewFormValidator builds a validator that reports fields by their `form`
// tag (the HTML input name) and knows the custom strongpassword rule.
func NewFormValidator() *FormValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Must never fail: the rule func has the right signature and the tag is
	// not yet registered on a fresh *Validate.
	if err := v.RegisterValidation("strongpassword", strongPassword); err != nil {
		panic(fmt.Sprintf("validation: register strongpassword: %v", err))
	}

	return &FormValidator{v: v}
}

// Validate runs every rule on the form and returns the complete violation
// set. All rules are evaluated; nothing short-circuits on the first failure.
func (fv *FormValidator) Validate(form any) Errors {
	err := fv.v.Struct(form)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-validation error (bad input type); surface it on a synthetic
		// field so it is still visible rather than silently swallowed.
		return Errors{{Field: "form", Message: "submission could not be validated"}}
	}

	var errs Errors
	for _, fe := range ve {
		errs.Add(fe.Field(), fieldMessage(fe))
	}
	return errs
}

// fieldMessage converts a single violation into the human-readable message
// rendered next to the input.
func fieldMessage(fe validator.FieldError) string {
	field := displayName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please provide a %s.", field)
	case "email":
		return "A valid email is required."
	case "min":
		return fmt.Sprintf("Please provide a %s that is at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", capitalize(field), fe.Param())
	case "alpha":
		return fmt.Sprintf("%s can only contain alphabetical characters.", capitalize(field))
	case "gte":
		return fmt.Sprintf("Please provide a valid %s of at least %s.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("Please provide a valid %s of at most %s.", field, fe.Param())
	case "strongpassword":
		return "Password does not meet requirements."
	default:
		return fmt.Sprintf("%s failed validation (%s).", capitalize(field), fe.Tag())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// displayName turns a form field name like "account_firstname" into the
// wording used in messages ("first name").
func displayName(field string) string {
	name := field
	if i := strings.IndexByte(name, '_'); i >= 0 {
		name = name[i+1:]
	}
	switch name {
	case "firstname":
		return "first name"
	case "lastname":
		return "last name"
	default:
		return strings.ReplaceAll(name, "_", " ")
	}
}

// strongPassword enforces the registration password policy: at least 12
// characters with one lowercase, one uppercase, one digit, and one symbol.
func strongPassword(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 12 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
