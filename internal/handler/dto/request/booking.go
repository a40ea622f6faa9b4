package request

import (
	"time"

	"github.com/google/uuid"
)

// Dates travel as calendar days, not instants. Checkin/checkout hours are a
// property-level concern outside this API.
type CreateBookingRequest struct {
	HotelID    uuid.UUID `json:"hotel_id" binding:"required"`
	RoomNumber string    `json:"room_number" binding:"required"`
	StartDate  string    `json:"start_date" binding:"required"`
	EndDate    string    `json:"end_date" binding:"required"`
}

func (r CreateBookingRequest) ParseDates() (start, end time.Time, err error) {
	start, err = time.Parse(time.DateOnly, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = time.Parse(time.DateOnly, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
