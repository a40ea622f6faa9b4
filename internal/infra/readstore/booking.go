package readstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"hotelbook/internal/infra"
	"hotelbook/internal/infra/db"
	"hotelbook/internal/usecase/queries"
)

type BookingRow struct {
	ID              uuid.UUID
	GuestID         uuid.UUID
	HotelID         uuid.UUID
	RoomNumber      string
	StartDate       time.Time
	EndDate         time.Time
	OfferID         *uuid.UUID
	OriginalCents   int64
	DiscountedCents int64
	AuthorizationID *string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*BookingRow, error) {
	return s.findOne(ctx, "b.id = $1", id)
}

func (s *BookingReadStore) FindByAuthorizationID(ctx context.Context, authorizationID string) (*BookingRow, error) {
	return s.findOne(ctx, "b.authorization_id = $1", authorizationID)
}

func (s *BookingReadStore) findOne(ctx context.Context, where string, arg any) (*BookingRow, error) {
	var row BookingRow
	err := s.db.QueryRow(ctx, bookingQuery(where), arg).Scan(
		&row.ID, &row.GuestID, &row.HotelID, &row.RoomNumber,
		&row.StartDate, &row.EndDate, &row.OfferID,
		&row.OriginalCents, &row.DiscountedCents, &row.AuthorizationID,
		&row.Status, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find booking", err)
	}
	return &row, nil
}

func bookingQuery(where string) string {
	const base = `
SELECT b.id, b.guest_id, br.hotel_id, br.room_number,
       b.start_date, b.end_date, b.offer_id,
       b.original_cents, b.discounted_cents, b.authorization_id,
       b.status, b.created_at, b.updated_at
FROM bookings b
JOIN booking_rooms br ON br.booking_id = b.id
WHERE `
	return base + where + " LIMIT 1"
}

// BookingViewStore serves the query side; it implements queries.BookingViewRepo.
type BookingViewStore struct {
	db db.DBTX
}

func NewBookingViewStore(dbtx db.DBTX) *BookingViewStore {
	return &BookingViewStore{db: dbtx}
}

const findViewSQL = `
SELECT b.id, br.hotel_id, h.name, br.room_number, b.guest_id,
       b.start_date, b.end_date, b.status,
       b.original_cents, b.discounted_cents, b.offer_id,
       b.created_at, b.updated_at
FROM bookings b
JOIN booking_rooms br ON br.booking_id = b.id
JOIN hotels h ON h.id = br.hotel_id
WHERE b.id = $1
LIMIT 1`

func (s *BookingViewStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var v queries.BookingView
	err := s.db.QueryRow(ctx, findViewSQL, id).Scan(
		&v.ID, &v.HotelID, &v.HotelName, &v.RoomNumber, &v.GuestID,
		&v.StartDate, &v.EndDate, &v.Status,
		&v.OriginalCents, &v.DiscountedCents, &v.OfferID,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find booking view", err)
	}
	return &v, nil
}

const listByGuestSQL = `
SELECT b.id, h.name, br.room_number,
       b.start_date, b.end_date, b.status, b.discounted_cents, b.created_at
FROM bookings b
JOIN booking_rooms br ON br.booking_id = b.id
JOIN hotels h ON h.id = br.hotel_id
WHERE b.guest_id = $1
ORDER BY b.created_at DESC`

func (s *BookingViewStore) FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, listByGuestSQL, guestID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.HotelName, &item.RoomNumber,
			&item.StartDate, &item.EndDate, &item.Status,
			&item.DiscountedCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to iterate bookings", err)
	}
	return items, nil
}
