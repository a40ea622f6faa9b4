package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/domain/offer"
	"hotelbook/internal/infra"
	"hotelbook/internal/pkg/clock"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/shared"
)

type CreateBookingParams struct {
	HotelID    uuid.UUID
	RoomNumber string
	StartDate  time.Time
	EndDate    time.Time
}

type CreateBookingResult struct {
	BookingID    uuid.UUID
	ClientSecret string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, guestID uuid.UUID, params CreateBookingParams) (*CreateBookingResult, error)
}

type bookingCommandsImpl struct {
	uow         shared.UnitOfWork
	gateway     PaymentGateway
	factory     *booking.Factory
	clock       clock.Clock
	currency    string
	authTimeout time.Duration
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	gateway PaymentGateway,
	factory *booking.Factory,
	clk clock.Clock,
	currency string,
	authTimeout time.Duration,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:         uow,
		gateway:     gateway,
		factory:     factory,
		clock:       clk,
		currency:    currency,
		authTimeout: authTimeout,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	guestID uuid.UUID,
	params CreateBookingParams,
) (*CreateBookingResult, error) {
	stay, err := booking.NewStayPeriod(params.StartDate, params.EndDate)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidStay)
	}

	// Directory lookups happen before any transaction is opened: a missing
	// hotel or room is a plain NotFound with no side effects.
	reads := c.uow.CommandReads()

	if _, err := reads.HotelByID(ctx, params.HotelID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrHotelNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	roomSnap, err := reads.RoomByNumber(ctx, params.HotelID, params.RoomNumber)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if _, err := reads.GuestByID(ctx, guestID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrGuestNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	activeOffer, err := c.resolveActiveOffer(ctx, reads, params.HotelID)
	if err != nil {
		return nil, err
	}

	roomSpec := booking.RoomSpec{
		HotelID:       roomSnap.HotelID,
		RoomNumber:    roomSnap.RoomNumber,
		PricePerNight: booking.NewMoney(roomSnap.PricePerNightCents),
	}

	var (
		bookingID       uuid.UUID
		authorizationID string
		clientSecret    string
	)

	txErr := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The retry loop may run this closure more than once; an authorization
		// created by an aborted attempt is an external side effect the local
		// rollback cannot reach, so void it before starting over.
		if authorizationID != "" {
			c.compensateAuthorization(ctx, authorizationID)
			authorizationID = ""
			clientSecret = ""
		}

		available, err := tx.Availability().IsAvailable(ctx, roomSpec.HotelID, roomSpec.RoomNumber, stay)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !available {
			return errs.ErrRoomUnavailable
		}

		pending, err := c.factory.CreatePendingBooking(guestID, roomSpec, stay, activeOffer)
		if err != nil {
			return err
		}

		if err := tx.Bookings().Create(ctx, pending); err != nil {
			// Overlap exclusion fired between our check and insert.
			if infra.IsKind(err, infra.KindConflict) {
				return errs.ErrRoomUnavailable
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		authCtx, cancel := context.WithTimeout(ctx, c.authTimeout)
		defer cancel()

		auth, err := c.gateway.CreateAuthorization(authCtx, pending.Quote().Discounted.Cents(), c.currency)
		if err != nil {
			// Timeout counts as failure, not "unknown": the transaction rolls
			// back and no pending booking survives.
			return errs.Mark(err, errs.ErrAuthorizationFailed)
		}
		authorizationID = auth.ID
		clientSecret = auth.ClientSecret

		if err := pending.AttachAuthorization(auth.ID); err != nil {
			return err
		}
		if err := tx.Bookings().AttachAuthorization(ctx, pending.ID(), auth.ID); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		bookingID = pending.ID()
		return nil
	})
	if txErr != nil {
		if authorizationID != "" {
			c.compensateAuthorization(ctx, authorizationID)
		}
		return nil, txErr
	}

	return &CreateBookingResult{
		BookingID:    bookingID,
		ClientSecret: clientSecret,
	}, nil
}

func (c *bookingCommandsImpl) resolveActiveOffer(
	ctx context.Context,
	reads shared.CommandReads,
	hotelID uuid.UUID,
) (*offer.Offer, error) {
	snap, err := reads.ActiveOfferByHotel(ctx, hotelID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snap == nil {
		return nil, nil
	}

	activeOffer, err := offer.NewOffer(snap.ID, snap.HotelID, snap.PercentOff, offer.Kind(snap.Kind), snap.ExpiresAt)
	if err != nil {
		// A malformed stored offer never blocks a booking; price without it.
		slog.Warn("ignoring invalid special offer", "offer_id", snap.ID, "error", err.Error())
		return nil, nil
	}
	return activeOffer, nil
}

// compensateAuthorization voids an authorization left behind by a transaction
// that did not commit. Failure is logged, not returned: the gateway side will
// expire the uncaptured authorization on its own eventually.
func (c *bookingCommandsImpl) compensateAuthorization(ctx context.Context, authorizationID string) {
	voidCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.authTimeout)
	defer cancel()

	if err := c.gateway.VoidAuthorization(voidCtx, authorizationID); err != nil {
		slog.Error("failed to void orphaned payment authorization",
			"authorization_id", authorizationID,
			"error", err.Error())
	}
}
