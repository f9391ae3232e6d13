package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// The binding engine is extended with strict date and time rules so
// request structs can validate wire formats declaratively instead of
// each handler re-checking them. The rules reuse the same parsers the
// services rely on, so a value that binds also parses.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := ParseCalendarDate(fl.Field().String())
		return err == nil
	})
	v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, err := ParseClockTime(fl.Field().String())
		return err == nil
	})
}

// fieldMessage renders one failed rule as a human-readable sentence.
func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "calendardate":
		return e.Field() + " must be yyyy-mm-dd"
	case "clocktime":
		return e.Field() + " must be hh:mm"
	case "email":
		return e.Field() + " must be a valid email address"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}

// FormatValidationError joins every failed rule into one message.
func FormatValidationError(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, fieldMessage(e))
	}
	return strings.Join(messages, ", ")
}

// BindAndValidate binds the JSON request body to obj, running the
// binding tags. On failure it sends a 400 response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			BadRequest(c, "Validation failed: "+FormatValidationError(err))
		} else {
			BadRequest(c, "Invalid request payload: "+err.Error())
		}
		return false
	}
	return true
}
