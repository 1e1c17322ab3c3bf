package session

import (
	"errors"
	"fmt"
	"webui-harness/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]

		return apperr.ConfigurationError(op, fe.Namespace(),
			fmt.Errorf("%s fails %q validation (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}

	return apperr.ConfigurationError(op, "", err)
}

func (l ServerLocation) Validate() error {
	return validateStruct("ServerLocation.Validate", l)
}

func (c SessionConfig) Validate() error {
	return validateStruct("SessionConfig.Validate", c)
}
