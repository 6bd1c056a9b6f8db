package errs_test

import (
	"errors"
	"testing"

	"resto/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unrecognized enum value")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: status (cause: unrecognized enum value)", err.Error())
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("courierId")

	assert.Equal(t, "courierId", err.ParamName)
	assert.Equal(t, "value is required: courierId", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
}

func TestInvalidTransitionError(t *testing.T) {
	t.Run("NewInvalidTransitionError", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("ORDERED", "COMPLETED")

		assert.Equal(t, "ORDERED", err.From)
		assert.Equal(t, "COMPLETED", err.To)
		assert.Equal(t, "invalid status transition: ORDERED -> COMPLETED", err.Error())
		assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
	})

	t.Run("NewInvalidTransitionErrorWithCause", func(t *testing.T) {
		cause := errors.New("status changed concurrently")
		err := errs.NewInvalidTransitionErrorWithCause("PROCESSED", "ON_DELIVERY", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"invalid status transition: PROCESSED -> ON_DELIVERY (cause: status changed concurrently)",
			err.Error())
	})
}

func TestPreconditionFailedError(t *testing.T) {
	err := errs.NewPreconditionFailedError("assign courier first")

	assert.Equal(t, "assign courier first", err.Message)
	assert.Equal(t, "precondition failed: assign courier first", err.Error())
	assert.Equal(t, errs.ErrPreconditionFailed, err.Unwrap())
}

func TestPermissionDeniedError(t *testing.T) {
	err := errs.NewPermissionDeniedError("COURIER", "ORDER", "DELETE")

	assert.Equal(t, "COURIER", err.Role)
	assert.Equal(t, "ORDER", err.Resource)
	assert.Equal(t, "DELETE", err.Action)
	assert.Equal(t, "permission denied: COURIER may not DELETE ORDER", err.Error())
	assert.Equal(t, errs.ErrPermissionDenied, err.Unwrap())
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid status transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "precondition failed", errs.ErrPreconditionFailed.Error())
		assert.Equal(t, "permission denied", errs.ErrPermissionDenied.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsRequiredError("courierId"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewInvalidTransitionError("READY", "ORDERED"), errs.ErrInvalidTransition)
	require.ErrorIs(t, errs.NewPreconditionFailedError("courier is inactive"), errs.ErrPreconditionFailed)
	require.ErrorIs(t, errs.NewPermissionDeniedError("CUSTOMER", "ANALYTICS", "READ"), errs.ErrPermissionDenied)
}
