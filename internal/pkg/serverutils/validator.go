package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"knowledge-assistant-be/internal/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]string, len(ve))
		for i, fe := range ve {
			fields[i] = fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag())
		}
		return apperr.Validation("invalid request: " + strings.Join(fields, ", "))
	}
	return apperr.Validation("invalid request")
}
