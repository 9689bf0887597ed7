package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_MessageAndMatching(t *testing.T) {
	ve := &ValidationError{}
	require.NoError(t, ve.OrNil())

	ve.Add("patID", "Patient is required")
	ve.Add("date", "Date is required")
	ve.Add("date", "Date must be YYYY-MM-DD")

	err := fmt.Errorf("create appointment: %w", ve.OrNil())
	require.ErrorIs(t, err, ErrValidation)

	var got *ValidationError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, []string{"Date is required", "Date must be YYYY-MM-DD"}, got.Fields["date"])
	assert.Equal(t, "validation error: date: Date is required; Date must be YYYY-MM-DD, patID: Patient is required", ve.Error())
}

func TestValidationError_FormMessageOnly(t *testing.T) {
	ve := &ValidationError{Message: "Address and signature are required"}
	assert.Equal(t, "validation error: Address and signature are required", ve.Error())
	assert.Equal(t, "validation error", (&ValidationError{}).Error())
}

func TestAPIError_Unwrap(t *testing.T) {
	err := NewAPIError(503, "maintenance", ErrUnavailable)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "api error: status 503: maintenance", err.Error())

	plain := NewAPIError(409, "", nil)
	assert.NotErrorIs(t, plain, ErrUnavailable)
	assert.Equal(t, "api error: status 409", plain.Error())
}
