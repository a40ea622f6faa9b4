package commands

import (
	"context"
	"log/slog"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/domain/payment"
	"hotelbook/internal/infra"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/shared"
)

// PaymentEventCommands consumes asynchronous payment-status events and
// finalizes or voids pending bookings. Delivery is at-least-once: duplicates,
// reordering and unknown kinds must all leave state consistent.
type PaymentEventCommands interface {
	HandlePaymentEvent(ctx context.Context, event payment.Event) error
}

type paymentEventCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier Notifier
}

func NewPaymentEventCommands(uow shared.UnitOfWork, notifier Notifier) PaymentEventCommands {
	return &paymentEventCommandsImpl{
		uow:      uow,
		notifier: notifier,
	}
}

func (p *paymentEventCommandsImpl) HandlePaymentEvent(ctx context.Context, event payment.Event) error {
	switch e := event.(type) {
	case payment.AuthorizationSucceeded:
		return p.handleSucceeded(ctx, e)
	case payment.AuthorizationFailed:
		return p.handleFailed(ctx, e)
	case payment.Unknown:
		slog.Debug("ignoring unhandled payment event kind", "kind", e.Kind, "event_id", e.EventID)
		return nil
	default:
		return nil
	}
}

func (p *paymentEventCommandsImpl) handleSucceeded(ctx context.Context, e payment.AuthorizationSucceeded) error {
	snap, err := p.locateBooking(ctx, e.AuthorizationID)
	if err != nil {
		return err
	}
	if snap.Status.Terminal() {
		// Duplicate delivery. Success without re-running side effects.
		slog.Info("duplicate payment event for finalized booking",
			"booking_id", snap.ID, "status", snap.Status, "event_id", e.EventID)
		return nil
	}

	var (
		guest     *shared.GuestSnapshot
		hotel     *shared.HotelSnapshot
		confirmed bool
	)

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// A booking referencing a vanished guest or hotel means an invariant
		// this service should have maintained was broken earlier.
		guest, err = tx.Reads().GuestByID(ctx, snap.GuestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return p.critical(err, "booking references missing guest", snap)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		hotel, err = tx.Reads().HotelByID(ctx, snap.HotelID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return p.critical(err, "booking references missing hotel", snap)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		confirmed, err = tx.Bookings().TransitionStatus(ctx, snap.ID, booking.StatusPending, booking.StatusConfirmed)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if !confirmed {
		// Another delivery won the race between our snapshot and the update.
		slog.Info("booking already finalized by concurrent event", "booking_id", snap.ID)
		return nil
	}

	slog.Info("booking confirmed", "booking_id", snap.ID, "authorization_id", e.AuthorizationID)

	// Best-effort: notification failure must not surface to the gateway or
	// touch booking state.
	go func(guest shared.GuestSnapshot, b shared.BookingSnapshot, hotel shared.HotelSnapshot) {
		if err := p.notifier.BookingConfirmed(context.WithoutCancel(ctx), guest, b, hotel); err != nil {
			slog.Warn("confirmation notification failed", "booking_id", b.ID, "error", err.Error())
		}
	}(*guest, *snap, *hotel)

	return nil
}

func (p *paymentEventCommandsImpl) handleFailed(ctx context.Context, e payment.AuthorizationFailed) error {
	snap, err := p.locateBooking(ctx, e.AuthorizationID)
	if err != nil {
		return err
	}
	if snap.Status.Terminal() {
		slog.Info("duplicate payment event for finalized booking",
			"booking_id", snap.ID, "status", snap.Status, "event_id", e.EventID)
		return nil
	}

	err = p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Bookings().TransitionStatus(ctx, snap.ID, booking.StatusPending, booking.StatusFailed)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("booking failed", "booking_id", snap.ID, "reason", e.Reason)
	return nil
}

func (p *paymentEventCommandsImpl) locateBooking(ctx context.Context, authorizationID string) (*shared.BookingSnapshot, error) {
	snap, err := p.uow.CommandReads().BookingByAuthorizationID(ctx, authorizationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// A payment event arrived for a booking that was never durably
			// recorded. Non-retriable server-side inconsistency.
			slog.Error("payment event for unknown authorization",
				"authorization_id", authorizationID)
			return nil, errs.Mark(err, errs.ErrCriticalInconsistency)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func (p *paymentEventCommandsImpl) critical(err error, msg string, snap *shared.BookingSnapshot) error {
	slog.Error(msg, "booking_id", snap.ID, "guest_id", snap.GuestID, "hotel_id", snap.HotelID)
	return errs.Mark(err, errs.ErrCriticalInconsistency)
}
