package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medagenda/agenda-api/internal/model"
)

// RegisterCustomValidations attaches domain validations to gin's
// binding engine. Call once at startup, before the router handles
// requests.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("timeofday", timeOfDay)
}

// timeofday accepts "HH:MM" wall-clock values, 00:00 through 23:59.
func timeOfDay(fl validator.FieldLevel) bool {
	_, err := model.ParseMinuteOfDay(fl.Field().String())
	return err == nil
}
