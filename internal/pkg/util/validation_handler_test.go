package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleForm struct {
	Title       string `validate:"required,max=5"`
	NotifyEmail string `validate:"omitempty,email"`
}

func TestFieldErrors(t *testing.T) {
	err := ValidateDTO(&sampleForm{Title: "", NotifyEmail: "nope"})
	require.Error(t, err)

	details := FieldErrors(err)
	require.Len(t, details, 2)
	assert.Equal(t, "title", details[0].Field)
	assert.Equal(t, "required", details[0].Tag)
	assert.Equal(t, "title is required", details[0].Message)
	assert.Equal(t, "notifyEmail", details[1].Field)
	assert.Equal(t, "email", details[1].Tag)

	assert.NoError(t, ValidateDTO(&sampleForm{Title: "ok"}))
	assert.Nil(t, FieldErrors(errors.New("plain")))
}
