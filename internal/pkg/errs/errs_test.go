package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"orderservice/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "ORD-000001")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "ORD-000001", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: ORD-000001", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("store is closed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "ORD-000001", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: ORD-000001 (cause: store is closed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("totalAmount")

		assert.Equal(t, "totalAmount", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: totalAmount", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("-5 is negative")
		err := errs.NewValueIsInvalidErrorWithCause("totalAmount", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: totalAmount (cause: -5 is negative)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("delay", -1, 0, 60)

		assert.Equal(t, "delay", err.ParamName)
		assert.Equal(t, -1, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 60, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is out of range: -1 is delay, min value is 0, max value is 60", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is out of range: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("customerId")

		assert.Equal(t, "customerId", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: customerId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("blank string")
		err := errs.NewValueIsRequiredErrorWithCause("customerId", cause)

		assert.Equal(t, "value is required: customerId (cause: blank string)", err.Error())
	})
}

func TestStatusTransitionIsNotAllowedError(t *testing.T) {
	t.Run("NewStatusTransitionIsNotAllowedError", func(t *testing.T) {
		err := errs.NewStatusTransitionIsNotAllowedError("out_for_delivery", "cancelled")

		assert.Equal(t, "out_for_delivery", err.From)
		assert.Equal(t, "cancelled", err.To)
		assert.Equal(t,
			"status transition is not allowed: from out_for_delivery to cancelled",
			err.Error())
		assert.Equal(t, errs.ErrStatusTransitionIsNotAllowed, err.Unwrap())
	})

	t.Run("NewStatusTransitionIsNotAllowedErrorWithCause", func(t *testing.T) {
		err := errs.NewStatusTransitionIsNotAllowedErrorWithCause(
			"delivered", "cancelled", errors.New("order is completed"))

		assert.Equal(t,
			"status transition is not allowed: from delivered to cancelled (cause: order is completed)",
			err.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works through wrapping and joining", func(t *testing.T) {
		wrapped := fmt.Errorf("cancel order: %w", errs.NewStatusTransitionIsNotAllowedError("a", "b"))
		require.ErrorIs(t, wrapped, errs.ErrStatusTransitionIsNotAllowed)

		joined := errors.Join(
			errs.NewValueIsRequiredError("customerId"),
			errs.NewValueIsInvalidError("totalAmount"),
		)
		require.ErrorIs(t, joined, errs.ErrValueIsRequired)
		require.ErrorIs(t, joined, errs.ErrValueIsInvalid)
		require.NotErrorIs(t, joined, errs.ErrObjectNotFound)
	})

	t.Run("errors.As extracts the typed error", func(t *testing.T) {
		err := fmt.Errorf("lookup: %w", errs.NewObjectNotFoundError("orderId", "ORD-000042"))

		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "ORD-000042", notFound.ID)
	})
}
