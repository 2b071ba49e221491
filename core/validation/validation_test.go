package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Account string `validate:"required"`
	Kind    string `validate:"required,oneof=student teacher admin"`
	Age     int
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Account: "s01", Kind: "student"}))

	err := Struct(sample{Kind: "user"})
	require.Error(t, err)

	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{
		{Field: "Account", Rule: "required"},
		{Field: "Kind", Rule: "oneof"},
	}, verr.Fields)
	assert.Contains(t, err.Error(), "Account:required")
}
