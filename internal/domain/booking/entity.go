package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrAlreadyTerminal     = errors.New("booking is already in a terminal state")
	ErrAuthorizationSet    = errors.New("payment authorization already attached")
	ErrNoRoomsAssigned     = errors.New("booking has no room assignments")
	ErrDiscountExceedsBase = errors.New("discounted price exceeds original price")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusFailed, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

func (s Status) Terminal() bool {
	return s != StatusPending
}

// Booking is one reservation attempt. It is created pending inside the same
// transaction as its room assignments, and only ever moves
// pending -> confirmed | failed | cancelled.
type Booking struct {
	id              uuid.UUID
	guestID         uuid.UUID
	stay            StayPeriod
	rooms           []RoomAssignment
	offerID         *uuid.UUID
	quote           Quote
	authorizationID string
	status          Status
	createdAt       time.Time
	updatedAt       time.Time
}

func newBooking(
	guestID uuid.UUID,
	stay StayPeriod,
	rooms []RoomAssignment,
	offerID *uuid.UUID,
	quote Quote,
) (*Booking, error) {
	if len(rooms) == 0 {
		return nil, ErrNoRoomsAssigned
	}
	if quote.Original.LessThan(quote.Discounted) {
		return nil, ErrDiscountExceedsBase
	}
	return &Booking{
		id:      uuid.New(),
		guestID: guestID,
		stay:    stay,
		rooms:   rooms,
		offerID: offerID,
		quote:   quote,
		status:  StatusPending,
	}, nil
}

func ReconstructBooking(
	id, guestID uuid.UUID,
	stay StayPeriod,
	rooms []RoomAssignment,
	offerID *uuid.UUID,
	quote Quote,
	authorizationID string,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		guestID:         guestID,
		stay:            stay,
		rooms:           rooms,
		offerID:         offerID,
		quote:           quote,
		authorizationID: authorizationID,
		status:          status,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// AttachAuthorization binds the external payment authorization. It must happen
// exactly once, before the creating transaction commits.
func (b *Booking) AttachAuthorization(authorizationID string) error {
	if b.status != StatusPending {
		return ErrAlreadyTerminal
	}
	if b.authorizationID != "" {
		return ErrAuthorizationSet
	}
	b.authorizationID = authorizationID
	return nil
}

func (b *Booking) Confirm() error {
	if b.status != StatusPending {
		return ErrAlreadyTerminal
	}
	b.status = StatusConfirmed
	return nil
}

func (b *Booking) Fail() error {
	if b.status != StatusPending {
		return ErrAlreadyTerminal
	}
	b.status = StatusFailed
	return nil
}

func (b *Booking) Cancel() error {
	if b.status != StatusPending {
		return ErrAlreadyTerminal
	}
	b.status = StatusCancelled
	return nil
}

func (b *Booking) IsPending() bool   { return b.status == StatusPending }
func (b *Booking) IsConfirmed() bool { return b.status == StatusConfirmed }
func (b *Booking) IsTerminal() bool  { return b.status.Terminal() }

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) GuestID() uuid.UUID      { return b.guestID }
func (b *Booking) Stay() StayPeriod        { return b.stay }
func (b *Booking) Rooms() []RoomAssignment { return b.rooms }
func (b *Booking) OfferID() *uuid.UUID     { return b.offerID }
func (b *Booking) Quote() Quote            { return b.quote }
func (b *Booking) AuthorizationID() string { return b.authorizationID }
func (b *Booking) Status() Status          { return b.status }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time    { return b.updatedAt }
