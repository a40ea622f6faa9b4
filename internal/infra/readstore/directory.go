package readstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hotelbook/internal/infra"
	"hotelbook/internal/infra/db"
)

// Read stores for the external directories this core only consumes:
// hotels, rooms, guests and special offers.

type HotelRow struct {
	ID   uuid.UUID
	Name string
	City string
}

type RoomRow struct {
	HotelID            uuid.UUID
	RoomNumber         string
	PricePerNightCents int64
}

type GuestRow struct {
	ID       uuid.UUID
	Email    string
	FullName string
}

type OfferRow struct {
	ID         uuid.UUID
	HotelID    uuid.UUID
	PercentOff int32
	Kind       string
	ExpiresAt  time.Time
}

type DirectoryReadStore struct {
	db db.DBTX
}

func NewDirectoryReadStore(dbtx db.DBTX) *DirectoryReadStore {
	return &DirectoryReadStore{db: dbtx}
}

const findHotelSQL = `
SELECT id, name, city FROM hotels WHERE id = $1`

func (s *DirectoryReadStore) FindHotelByID(ctx context.Context, id uuid.UUID) (*HotelRow, error) {
	var row HotelRow
	err := s.db.QueryRow(ctx, findHotelSQL, id).Scan(&row.ID, &row.Name, &row.City)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "hotel not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find hotel", err)
	}
	return &row, nil
}

const findRoomSQL = `
SELECT hotel_id, room_number, price_per_night_cents
FROM rooms WHERE hotel_id = $1 AND room_number = $2`

func (s *DirectoryReadStore) FindRoomByNumber(ctx context.Context, hotelID uuid.UUID, roomNumber string) (*RoomRow, error) {
	var row RoomRow
	err := s.db.QueryRow(ctx, findRoomSQL, hotelID, roomNumber).
		Scan(&row.HotelID, &row.RoomNumber, &row.PricePerNightCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "room not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find room", err)
	}
	return &row, nil
}

const findGuestSQL = `
SELECT id, email, full_name FROM guests WHERE id = $1`

func (s *DirectoryReadStore) FindGuestByID(ctx context.Context, id uuid.UUID) (*GuestRow, error) {
	var row GuestRow
	err := s.db.QueryRow(ctx, findGuestSQL, id).Scan(&row.ID, &row.Email, &row.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "guest not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find guest", err)
	}
	return &row, nil
}

const findActiveOfferSQL = `
SELECT id, hotel_id, percent_off, kind, expires_at
FROM special_offers
WHERE hotel_id = $1 AND expires_at > $2
ORDER BY percent_off DESC
LIMIT 1`

// FindActiveOfferByHotel returns the best unexpired offer for the hotel,
// or NotFound when none applies.
func (s *DirectoryReadStore) FindActiveOfferByHotel(ctx context.Context, hotelID uuid.UUID, at time.Time) (*OfferRow, error) {
	var row OfferRow
	err := s.db.QueryRow(ctx, findActiveOfferSQL, hotelID, at).
		Scan(&row.ID, &row.HotelID, &row.PercentOff, &row.Kind, &row.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "no active offer", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find active offer", err)
	}
	return &row, nil
}
