package booking

import (
	"time"

	"hotelbook/internal/domain/offer"
)

// Quote holds the original and discounted total price for a stay.
// Discounted equals Original when no active offer applies.
type Quote struct {
	Original   Money
	Discounted Money
}

// ComputeQuote prices a stay at pricePerNight for every night in the period.
// An offer past its expiry at the booking's creation time is treated as absent.
func ComputeQuote(pricePerNight Money, stay StayPeriod, off *offer.Offer, now time.Time) Quote {
	original := pricePerNight.MulNights(stay.Nights())

	discounted := original
	if off != nil && off.ActiveAt(now) {
		discounted = original.ApplyPercentDiscount(off.PercentOff())
	}

	return Quote{
		Original:   original,
		Discounted: discounted,
	}
}
