package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/infra"
	"hotelbook/internal/infra/db"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
	pgErrCodeForeignKeyViolated = "23503"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

const insertBookingSQL = `
INSERT INTO bookings (
	id, guest_id, start_date, end_date, offer_id,
	original_cents, discounted_cents, authorization_id, status,
	created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`

const insertBookingRoomSQL = `
INSERT INTO booking_rooms (booking_id, hotel_id, room_number, start_date, end_date)
VALUES ($1, $2, $3, $4, $5)`

// Create inserts the booking row and every room line in the caller's
// transaction. Overlap exclusion or duplicate violations surface as Conflict.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	var offerID any
	if b.OfferID() != nil {
		offerID = *b.OfferID()
	}

	_, err := r.db.Exec(ctx, insertBookingSQL,
		b.ID(), b.GuestID(), b.Stay().Start(), b.Stay().End(), offerID,
		b.Quote().Original.Cents(), b.Quote().Discounted.Cents(),
		nullableString(b.AuthorizationID()), string(b.Status()),
	)
	if err != nil {
		return wrapWriteErr("failed to insert booking", err)
	}

	for _, room := range b.Rooms() {
		_, err := r.db.Exec(ctx, insertBookingRoomSQL,
			b.ID(), room.HotelID, room.RoomNumber, b.Stay().Start(), b.Stay().End(),
		)
		if err != nil {
			return wrapWriteErr("failed to insert booking room line", err)
		}
	}

	return nil
}

const attachAuthorizationSQL = `
UPDATE bookings SET authorization_id = $2, updated_at = now()
WHERE id = $1 AND status = 'pending'`

func (r *BookingRepository) AttachAuthorization(ctx context.Context, bookingID uuid.UUID, authorizationID string) error {
	tag, err := r.db.Exec(ctx, attachAuthorizationSQL, bookingID, authorizationID)
	if err != nil {
		return wrapWriteErr("failed to attach authorization", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "no pending booking to attach authorization to", nil)
	}
	return nil
}

const transitionStatusSQL = `
UPDATE bookings SET status = $3, updated_at = now()
WHERE id = $1 AND status = $2`

// TransitionStatus is the guarded pending -> terminal update. Zero affected
// rows is not an error: it means another delivery finalized the booking first.
func (r *BookingRepository) TransitionStatus(ctx context.Context, bookingID uuid.UUID, from, to booking.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, transitionStatusSQL, bookingID, string(from), string(to))
	if err != nil {
		return false, wrapWriteErr("failed to transition booking status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func wrapWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation, pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(infra.KindConflict, msg, err)
		case pgErrCodeForeignKeyViolated:
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, msg, err)
		}
	}
	return infra.WrapRepoErr(infra.KindDBFailure, msg, err)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
