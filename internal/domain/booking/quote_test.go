//go:build unit

package booking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/domain/offer"
)

func activeOffer(t *testing.T, percent int32, expiresAt time.Time) *offer.Offer {
	t.Helper()
	off, err := offer.NewOffer(uuid.New(), uuid.New(), percent, offer.KindSeasonal, expiresAt)
	require.NoError(t, err)
	return off
}

func TestComputeQuote(t *testing.T) {
	now := date(2026, 3, 1)

	t.Run("no offer prices nights at face value", func(t *testing.T) {
		stay, err := booking.NewStayPeriod(date(2026, 3, 10), date(2026, 3, 11))
		require.NoError(t, err)

		quote := booking.ComputeQuote(booking.NewMoney(10_000), stay, nil, now)

		assert.Equal(t, int64(10_000), quote.Original.Cents())
		assert.Equal(t, int64(10_000), quote.Discounted.Cents())
	})

	t.Run("active offer discounts the total", func(t *testing.T) {
		stay, err := booking.NewStayPeriod(date(2026, 3, 10), date(2026, 3, 13))
		require.NoError(t, err)
		off := activeOffer(t, 20, now.AddDate(0, 1, 0))

		quote := booking.ComputeQuote(booking.NewMoney(10_000), stay, off, now)

		assert.Equal(t, int64(30_000), quote.Original.Cents())
		assert.Equal(t, int64(24_000), quote.Discounted.Cents())
	})

	t.Run("expired offer is priced as absent", func(t *testing.T) {
		stay, err := booking.NewStayPeriod(date(2026, 3, 10), date(2026, 3, 13))
		require.NoError(t, err)
		off := activeOffer(t, 20, now.AddDate(0, 0, -1))

		quote := booking.ComputeQuote(booking.NewMoney(10_000), stay, off, now)

		assert.Equal(t, int64(30_000), quote.Original.Cents())
		assert.Equal(t, int64(30_000), quote.Discounted.Cents())
	})

	t.Run("offer expiring exactly now is inactive", func(t *testing.T) {
		stay, err := booking.NewStayPeriod(date(2026, 3, 10), date(2026, 3, 11))
		require.NoError(t, err)
		off := activeOffer(t, 50, now)

		quote := booking.ComputeQuote(booking.NewMoney(10_000), stay, off, now)

		assert.Equal(t, quote.Original, quote.Discounted)
	})
}
