package offer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidPercent = errors.New("discount percent must be between 1 and 100")

type Kind string

const (
	KindSeasonal   Kind = "seasonal"
	KindLastMinute Kind = "last_minute"
	KindLoyalty    Kind = "loyalty"
)

// Offer is a read-only discount consumed at booking time. Its CRUD lifecycle
// is owned elsewhere; this service only checks expiry and applies the percent.
type Offer struct {
	id         uuid.UUID
	hotelID    uuid.UUID
	percentOff int32
	kind       Kind
	expiresAt  time.Time
}

func NewOffer(id, hotelID uuid.UUID, percentOff int32, kind Kind, expiresAt time.Time) (*Offer, error) {
	if percentOff < 1 || percentOff > 100 {
		return nil, ErrInvalidPercent
	}
	return &Offer{
		id:         id,
		hotelID:    hotelID,
		percentOff: percentOff,
		kind:       kind,
		expiresAt:  expiresAt,
	}, nil
}

func (o *Offer) ActiveAt(t time.Time) bool {
	return t.Before(o.expiresAt)
}

func (o *Offer) ID() uuid.UUID        { return o.id }
func (o *Offer) HotelID() uuid.UUID   { return o.hotelID }
func (o *Offer) PercentOff() int32    { return o.percentOff }
func (o *Offer) Kind() Kind           { return o.kind }
func (o *Offer) ExpiresAt() time.Time { return o.expiresAt }
