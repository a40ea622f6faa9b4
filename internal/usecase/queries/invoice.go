package queries

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/domain/payment"
	"hotelbook/internal/infra"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/commands"
	"hotelbook/internal/usecase/shared"
)

// InvoiceFormatter renders the final document for a paid booking. It is only
// ever handed data that already passed the payment preconditions.
type InvoiceFormatter interface {
	Render(b shared.BookingSnapshot, guest shared.GuestSnapshot, hotel shared.HotelSnapshot) ([]byte, error)
}

type InvoiceQueries interface {
	GetInvoice(ctx context.Context, guestID, bookingID uuid.UUID) ([]byte, error)
}

type invoiceQueriesImpl struct {
	reads     shared.CommandReads
	gateway   commands.PaymentGateway
	formatter InvoiceFormatter
}

func NewInvoiceQueries(uow shared.UnitOfWork, gateway commands.PaymentGateway, formatter InvoiceFormatter) InvoiceQueries {
	return &invoiceQueriesImpl{
		reads:     uow.CommandReads(),
		gateway:   gateway,
		formatter: formatter,
	}
}

func (q *invoiceQueriesImpl) GetInvoice(ctx context.Context, guestID, bookingID uuid.UUID) ([]byte, error) {
	snap, err := q.reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap.GuestID != guestID {
		return nil, errs.ErrBookingNotFound
	}

	// The formatter runs only for bookings that are locally confirmed AND
	// whose authorization the gateway still reports as succeeded.
	if snap.Status != booking.StatusConfirmed {
		return nil, errs.ErrPaymentNotCompleted
	}

	status, err := q.gateway.GetAuthorization(ctx, snap.AuthorizationID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrAuthorizationFailed)
	}
	if status != payment.StatusSucceeded {
		return nil, errs.ErrPaymentNotCompleted
	}

	guest, err := q.reads.GuestByID(ctx, snap.GuestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Error("confirmed booking references missing guest", "booking_id", snap.ID)
			return nil, errs.Mark(err, errs.ErrCriticalInconsistency)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	hotel, err := q.reads.HotelByID(ctx, snap.HotelID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Error("confirmed booking references missing hotel", "booking_id", snap.ID)
			return nil, errs.Mark(err, errs.ErrCriticalInconsistency)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	doc, err := q.formatter.Render(*snap, *guest, *hotel)
	if err != nil {
		return nil, errs.Wrap(err, "failed to render invoice")
	}
	return doc, nil
}
