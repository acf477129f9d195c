package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"id": "abc"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something failed")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something failed", resp.Error)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Username string `validate:"required,alphanum,min=3"`
		Email    string `validate:"required,email"`
	}

	v := validator.New()
	err := v.Struct(request{Username: "", Email: "not-an-email"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Username is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
}
