package commands

import (
	"context"

	"hotelbook/internal/domain/payment"
	"hotelbook/internal/usecase/shared"
)

// Authorization is the opaque handle pair the gateway issues for a charge.
// The client uses the secret to complete payment; neither value carries any
// further semantics here.
type Authorization struct {
	ID           string
	ClientSecret string
}

type PaymentGateway interface {
	CreateAuthorization(ctx context.Context, amountCents int64, currency string) (*Authorization, error)
	// VoidAuthorization compensates an authorization whose local transaction
	// did not commit. Best-effort; the gateway may already have expired it.
	VoidAuthorization(ctx context.Context, authorizationID string) error
	GetAuthorization(ctx context.Context, authorizationID string) (payment.AuthorizationStatus, error)
}

// Notifier delivers the post-confirmation message. Fire-and-forget: delivery
// failure never affects booking state.
type Notifier interface {
	BookingConfirmed(ctx context.Context, guest shared.GuestSnapshot, b shared.BookingSnapshot, hotel shared.HotelSnapshot) error
}
