package validation

import (
	"errors"
	"testing"

	"tasknotes/internal/core/model/request"

	"github.com/stretchr/testify/assert"
)

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	err := Validator.Struct(request.RegisterRequest{Email: "not-an-email"})

	errs := FormatValidationErrors(err)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Message
	}

	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "password is required", fields["password"])
	assert.Contains(t, fields, "email")
}

func TestFormatValidationErrors_NonValidatorError(t *testing.T) {
	errs := FormatValidationErrors(errors.New("unexpected EOF"))

	assert.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
}

func TestFormatValidationErrors_Nil(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(nil))
}
