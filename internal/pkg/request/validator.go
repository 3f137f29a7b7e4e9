package request

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding tags on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("hour", validateClock); err != nil {
		return err
	}
	return v.RegisterValidation("date", validateDate)
}

// validateClock checks the "HH:MM" / "HH:MM:SS" shape with "24:00" as the
// latest value. Whole-hour alignment is enforced by the slot rules.
func validateClock(fl validator.FieldLevel) bool {
	return IsClock(fl.Field().String())
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// validateDate accepts calendar dates in "YYYY-MM-DD".
func validateDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := ParseDate(s)
	return err == nil
}
