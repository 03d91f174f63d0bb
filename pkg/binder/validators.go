package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	usernameRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// usernameValidator allows letters, digits, dashes and underscores. Length is
// left to min/max so that each rule gets its own error message.
func usernameValidator(fl validator.FieldLevel) bool {
	return usernameRE.MatchString(fl.Field().String())
}
