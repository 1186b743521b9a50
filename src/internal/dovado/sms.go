package dovado

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/maksimkurb/dovado/src/internal/errors"
)

var telnoRegexp = regexp.MustCompile(`^\+?[0-9]{3,20}$`)

// smsRequest is validated before anything is written to the router.
type smsRequest struct {
	Number  string `validate:"required,telno"`
	Message string `validate:"required,sms_body"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("telno", validateTelno); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("sms_body", validateSMSBody); err != nil {
		panic(err)
	}
}

func validateTelno(fl validator.FieldLevel) bool {
	return telnoRegexp.MatchString(fl.Field().String())
}

// A line holding a single "." ends SMS input early.
func validateSMSBody(fl validator.FieldLevel) bool {
	for _, line := range strings.Split(fl.Field().String(), "\n") {
		if strings.TrimSpace(line) == "." {
			return false
		}
	}
	return true
}

// ValidateSMS checks that number looks like a phone number and message can be sent as-is.
func ValidateSMS(number, message string) error {
	req := smsRequest{Number: number, Message: normalizeMessage(message)}
	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			return apperrors.NewValidationError(smsValidationMessage(fieldErrs[0]), nil)
		}
		return apperrors.NewValidationError("invalid SMS", err)
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if ok {
		*target = v
	}
	return ok
}

func smsValidationMessage(e validator.FieldError) string {
	switch {
	case e.Field() == "Number" && e.Tag() == "required":
		return "phone number is required"
	case e.Field() == "Number":
		return fmt.Sprintf("invalid phone number %q: expected 3-20 digits with optional leading +", e.Value())
	case e.Tag() == "required":
		return "message is empty"
	case e.Tag() == "sms_body":
		return "message must not contain a line consisting of a single '.'"
	default:
		return fmt.Sprintf("%s: validation failed: %s", e.Field(), e.Tag())
	}
}

func normalizeMessage(message string) string {
	return strings.ReplaceAll(message, "\r\n", "\n")
}
