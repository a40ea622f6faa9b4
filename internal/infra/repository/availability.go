package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/infra"
	"hotelbook/internal/infra/db"
)

// AvailabilityRepository answers whether a room is free for a stay. It must
// run on a transaction: the room row is locked first so that two concurrent
// booking attempts for the same room serialize on the check-then-insert.
type AvailabilityRepository struct {
	db db.DBTX
}

func NewAvailabilityRepository(dbtx db.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{db: dbtx}
}

const lockRoomSQL = `
SELECT 1 FROM rooms
WHERE hotel_id = $1 AND room_number = $2
FOR UPDATE`

const overlapSQL = `
SELECT NOT EXISTS (
	SELECT 1
	FROM booking_rooms br
	JOIN bookings b ON b.id = br.booking_id
	WHERE br.hotel_id = $1
	  AND br.room_number = $2
	  AND b.status IN ('pending', 'confirmed')
	  AND br.start_date < $4
	  AND $3 < br.end_date
)`

// IsAvailable reports whether no non-terminal booking holds an overlapping
// half-open date range for the room. A missing room is reported as NotFound;
// the caller decides how to surface that.
func (r *AvailabilityRepository) IsAvailable(
	ctx context.Context,
	hotelID uuid.UUID,
	roomNumber string,
	stay booking.StayPeriod,
) (bool, error) {
	var one int
	if err := r.db.QueryRow(ctx, lockRoomSQL, hotelID, roomNumber).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, infra.WrapRepoErr(infra.KindNotFound, "room not found", err)
		}
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to lock room", err)
	}

	var available bool
	err := r.db.QueryRow(ctx, overlapSQL, hotelID, roomNumber, stay.Start(), stay.End()).Scan(&available)
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to check room availability", err)
	}
	return available, nil
}
