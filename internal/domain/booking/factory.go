package booking

import (
	"github.com/google/uuid"

	"hotelbook/internal/domain/offer"
	"hotelbook/internal/pkg/clock"
)

// RoomSpec is the slice of the room directory the factory needs.
type RoomSpec struct {
	HotelID       uuid.UUID
	RoomNumber    string
	PricePerNight Money
}

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clk clock.Clock) *Factory {
	return &Factory{Clock: clk}
}

// CreatePendingBooking assembles a pending booking for one room. The offer may
// be nil; an expired offer is priced as if absent.
func (f *Factory) CreatePendingBooking(
	guestID uuid.UUID,
	room RoomSpec,
	stay StayPeriod,
	off *offer.Offer,
) (*Booking, error) {
	quote := ComputeQuote(room.PricePerNight, stay, off, f.Clock.Now())

	var offerID *uuid.UUID
	if off != nil && off.ActiveAt(f.Clock.Now()) {
		id := off.ID()
		offerID = &id
	}

	rooms := []RoomAssignment{{
		HotelID:    room.HotelID,
		RoomNumber: room.RoomNumber,
	}}

	return newBooking(guestID, stay, rooms, offerID, quote)
}
