//go:build unit

package booking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/pkg/clock"
)

func pendingBooking(t *testing.T) *booking.Booking {
	t.Helper()

	clk := clock.NewMockClock(date(2026, 3, 1))
	factory := booking.NewFactory(clk)

	stay, err := booking.NewStayPeriod(date(2026, 3, 10), date(2026, 3, 12))
	require.NoError(t, err)

	room := booking.RoomSpec{
		HotelID:       uuid.New(),
		RoomNumber:    "101",
		PricePerNight: booking.NewMoney(12_500),
	}

	b, err := factory.CreatePendingBooking(uuid.New(), room, stay, nil)
	require.NoError(t, err)
	return b
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "failed", "cancelled"} {
		got, err := booking.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, booking.Status(s), got)
	}

	_, err := booking.ParseStatus("paid")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}

func TestBookingLifecycle(t *testing.T) {
	t.Run("factory creates pending booking", func(t *testing.T) {
		b := pendingBooking(t)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.False(t, b.IsTerminal())
		assert.Len(t, b.Rooms(), 1)
		assert.Equal(t, int64(25_000), b.Quote().Original.Cents())
		assert.Equal(t, int64(25_000), b.Quote().Discounted.Cents())
		assert.Empty(t, b.AuthorizationID())
	})

	t.Run("authorization attaches exactly once", func(t *testing.T) {
		b := pendingBooking(t)

		require.NoError(t, b.AttachAuthorization("auth_1"))
		assert.Equal(t, "auth_1", b.AuthorizationID())

		err := b.AttachAuthorization("auth_2")
		assert.ErrorIs(t, err, booking.ErrAuthorizationSet)
		assert.Equal(t, "auth_1", b.AuthorizationID())
	})

	t.Run("confirm from pending", func(t *testing.T) {
		b := pendingBooking(t)
		require.NoError(t, b.Confirm())
		assert.True(t, b.IsConfirmed())
		assert.True(t, b.IsTerminal())
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		transitions := map[string]func(*booking.Booking) error{
			"confirm": (*booking.Booking).Confirm,
			"fail":    (*booking.Booking).Fail,
			"cancel":  (*booking.Booking).Cancel,
		}

		for name, first := range transitions {
			t.Run(name, func(t *testing.T) {
				b := pendingBooking(t)
				require.NoError(t, first(b))

				for _, next := range transitions {
					assert.ErrorIs(t, next(b), booking.ErrAlreadyTerminal)
				}
				assert.ErrorIs(t, b.AttachAuthorization("auth_late"), booking.ErrAlreadyTerminal)
			})
		}
	})

	t.Run("reconstruct preserves state", func(t *testing.T) {
		id := uuid.New()
		guestID := uuid.New()
		stay, err := booking.NewStayPeriod(date(2026, 3, 10), date(2026, 3, 12))
		require.NoError(t, err)
		createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		b := booking.ReconstructBooking(
			id, guestID, stay,
			[]booking.RoomAssignment{{HotelID: uuid.New(), RoomNumber: "101"}},
			nil,
			booking.Quote{Original: booking.NewMoney(100), Discounted: booking.NewMoney(80)},
			"auth_1", booking.StatusConfirmed, createdAt, createdAt,
		)

		assert.Equal(t, id, b.ID())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, "auth_1", b.AuthorizationID())
		assert.Equal(t, createdAt, b.CreatedAt())
	})
}
