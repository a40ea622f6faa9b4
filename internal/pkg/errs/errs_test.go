//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotelbook/internal/pkg/errs"
)

func TestMark(t *testing.T) {
	cause := errors.New("connection reset")

	t.Run("mark is visible to errors.Is", func(t *testing.T) {
		err := errs.Mark(cause, errs.ErrAuthorizationFailed)
		assert.ErrorIs(t, err, errs.ErrAuthorizationFailed)
	})

	t.Run("cause stays in the chain", func(t *testing.T) {
		err := errs.Mark(cause, errs.ErrAuthorizationFailed)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("marking nil yields the mark itself", func(t *testing.T) {
		assert.ErrorIs(t, errs.Mark(nil, errs.ErrInvalidStay), errs.ErrInvalidStay)
	})

	t.Run("wrapping preserves the mark", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(cause, errs.ErrCriticalInconsistency), "handling payment event")
		assert.ErrorIs(t, err, errs.ErrCriticalInconsistency)
		assert.ErrorIs(t, err, cause)
	})
}
