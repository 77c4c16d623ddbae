package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_ListsFieldsSorted(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"price": "must be greater than or equal to 0",
		"name":  "is required",
	}}

	assert.Equal(t, "validation failed: name: is required; price: must be greater than or equal to 0", err.Error())
}

func TestValidationError_NoFields(t *testing.T) {
	assert.Equal(t, "validation failed", (&ValidationError{}).Error())
}

func TestNotFound_MatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("loading product: %w", NotFound("product", "p-1"))

	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.Equal(t, `loading product: product "p-1" not found`, err.Error())
}

func TestPersistence_WrapsOnce(t *testing.T) {
	cause := errors.New("connection refused")

	first := Persistence("find", cause)
	second := Persistence("update", first)

	var pe *PersistenceError
	assert.ErrorAs(t, second, &pe)
	assert.Equal(t, "find", pe.Op)
	assert.ErrorIs(t, second, cause)
	assert.Nil(t, Persistence("noop", nil))
}

func TestRoleErrors(t *testing.T) {
	var perm *PermissionError
	var unauth *UnauthenticatedError

	assert.ErrorAs(t, error(&PermissionError{Role: "user"}), &perm)
	assert.ErrorAs(t, error(&UnauthenticatedError{}), &unauth)
	assert.Contains(t, perm.Error(), "user")
}
