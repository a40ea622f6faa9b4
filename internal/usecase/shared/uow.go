package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hotelbook/internal/domain/booking"
)

// UnitOfWork owns both the availability check and the writes that depend on
// it, so the atomicity boundary is structural rather than caller-disciplined.
type UnitOfWork interface {
	// Within: full read-write transaction with retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside any transaction
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Availability() AvailabilityChecker
	Reads() CommandReads
}

// AvailabilityChecker decides whether a room is free for a stay. It must run
// inside the transaction that inserts the new room lines; the implementation
// serializes concurrent checks for the same room.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, hotelID uuid.UUID, roomNumber string, stay booking.StayPeriod) (bool, error)
}

type BookingRepository interface {
	// Create inserts the booking row and all of its room lines.
	Create(ctx context.Context, b *booking.Booking) error
	// AttachAuthorization stamps the external authorization id on a pending
	// booking before the creating transaction commits.
	AttachAuthorization(ctx context.Context, bookingID uuid.UUID, authorizationID string) error
	// TransitionStatus performs a guarded pending -> terminal update and
	// reports whether a row actually changed.
	TransitionStatus(ctx context.Context, bookingID uuid.UUID, from, to booking.Status) (bool, error)
}

type CommandReads interface {
	HotelByID(ctx context.Context, id uuid.UUID) (*HotelSnapshot, error)
	RoomByNumber(ctx context.Context, hotelID uuid.UUID, roomNumber string) (*RoomSnapshot, error)
	GuestByID(ctx context.Context, id uuid.UUID) (*GuestSnapshot, error)
	// ActiveOfferByHotel returns (nil, nil) when the hotel has no unexpired offer.
	ActiveOfferByHotel(ctx context.Context, hotelID uuid.UUID, at time.Time) (*OfferSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	BookingByAuthorizationID(ctx context.Context, authorizationID string) (*BookingSnapshot, error)
}

// Minimal snapshots for command-side reads

type HotelSnapshot struct {
	ID   uuid.UUID
	Name string
	City string
}

type RoomSnapshot struct {
	HotelID            uuid.UUID
	RoomNumber         string
	PricePerNightCents int64
}

type GuestSnapshot struct {
	ID       uuid.UUID
	Email    string
	FullName string
}

type OfferSnapshot struct {
	ID         uuid.UUID
	HotelID    uuid.UUID
	PercentOff int32
	Kind       string
	ExpiresAt  time.Time
}

type BookingSnapshot struct {
	ID              uuid.UUID
	GuestID         uuid.UUID
	HotelID         uuid.UUID
	RoomNumber      string
	StartDate       time.Time
	EndDate         time.Time
	OfferID         *uuid.UUID
	OriginalCents   int64
	DiscountedCents int64
	AuthorizationID string
	Status          booking.Status
	CreatedAt       time.Time
}
