package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidator_RegistersNotBlank(t *testing.T) {
	v := newValidator()
	type input struct {
		Query string `validate:"notblank"`
	}
	assert.NoError(t, v.Struct(input{Query: "cats"}))
	assert.Error(t, v.Struct(input{Query: " \t "}))
	assert.NotPanics(t, func() { newValidator() })
}
