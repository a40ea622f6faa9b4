package response

import (
	"time"

	"github.com/google/uuid"

	"hotelbook/internal/usecase/commands"
	"hotelbook/internal/usecase/queries"
)

type CreateBookingResponse struct {
	BookingID    uuid.UUID `json:"bookingId"`
	ClientSecret string    `json:"clientSecret"`
	Status       string    `json:"status"`
}

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	HotelID         uuid.UUID  `json:"hotelId"`
	HotelName       string     `json:"hotelName"`
	RoomNumber      string     `json:"roomNumber"`
	StartDate       string     `json:"startDate"`
	EndDate         string     `json:"endDate"`
	Status          string     `json:"status"`
	OriginalCents   int64      `json:"originalCents"`
	DiscountedCents int64      `json:"discountedCents"`
	OfferID         *uuid.UUID `json:"offerId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	HotelName       string    `json:"hotelName"`
	RoomNumber      string    `json:"roomNumber"`
	StartDate       string    `json:"startDate"`
	EndDate         string    `json:"endDate"`
	Status          string    `json:"status"`
	DiscountedCents int64     `json:"discountedCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FromCreateBookingResult(result *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingID:    result.BookingID,
		ClientSecret: result.ClientSecret,
		Status:       "pending",
	}
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:              rm.ID,
		HotelID:         rm.HotelID,
		HotelName:       rm.HotelName,
		RoomNumber:      rm.RoomNumber,
		StartDate:       rm.StartDate.Format(time.DateOnly),
		EndDate:         rm.EndDate.Format(time.DateOnly),
		Status:          rm.Status,
		OriginalCents:   rm.OriginalCents,
		DiscountedCents: rm.DiscountedCents,
		OfferID:         rm.OfferID,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:              rm.ID,
		HotelName:       rm.HotelName,
		RoomNumber:      rm.RoomNumber,
		StartDate:       rm.StartDate.Format(time.DateOnly),
		EndDate:         rm.EndDate.Format(time.DateOnly),
		Status:          rm.Status,
		DiscountedCents: rm.DiscountedCents,
		CreatedAt:       rm.CreatedAt,
	}
}
