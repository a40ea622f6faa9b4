package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	HotelID         uuid.UUID  `json:"hotel_id"`
	HotelName       string     `json:"hotel_name"`
	RoomNumber      string     `json:"room_number"`
	GuestID         uuid.UUID  `json:"guest_id"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Status          string     `json:"status"`
	OriginalCents   int64      `json:"original_cents"`
	DiscountedCents int64      `json:"discounted_cents"`
	OfferID         *uuid.UUID `json:"offer_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	HotelName       string    `json:"hotel_name"`
	RoomNumber      string    `json:"room_number"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Status          string    `json:"status"`
	DiscountedCents int64     `json:"discounted_cents"`
	CreatedAt       time.Time `json:"created_at"`
}
