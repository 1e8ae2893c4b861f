package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPassesAppErrorThrough(t *testing.T) {
	original := NotFound("conversation not found")
	wrapped := fmt.Errorf("context: %w", original)

	got := From(wrapped)
	assert.Same(t, original, got)
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")
	got := From(cause)

	assert.Equal(t, CodeInternal, got.Code)
	assert.ErrorIs(t, got, cause)
}

func TestValidationCarriesAllFields(t *testing.T) {
	fields := []FieldError{
		{Field: "from", Code: "invalid_contact", Message: "bad"},
		{Field: "to", Code: "invalid_contact", Message: "bad"},
	}
	err := Validation(fields)

	require.Len(t, err.Fields, 2)
	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Code.HTTPStatus())
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, CodeValidation.HTTPStatus())
	assert.Equal(t, http.StatusNotFound, CodeNotFound.HTTPStatus())
	assert.Equal(t, http.StatusConflict, CodeConflict.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, CodeInternal.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, Code("bogus").HTTPStatus())
}
