package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/infra"
	"hotelbook/internal/infra/db"
	"hotelbook/internal/infra/readstore"
	"hotelbook/internal/infra/repository"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/shared"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted is enough: the availability check locks the room row, so
// concurrent attempts for the same room serialize on that lock.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask high bit to keep the value positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo      shared.BookingRepository
	availabilityRepo shared.AvailabilityChecker
	commandReads     shared.CommandReads
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Availability() shared.AvailabilityChecker {
	if t.availabilityRepo == nil {
		t.availabilityRepo = repository.NewAvailabilityRepository(t.dbtx)
	}
	return t.availabilityRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{dbtx: t.dbtx}
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	directoryStore *readstore.DirectoryReadStore
	bookingStore   *readstore.BookingReadStore
}

func (r *commandReads) directory() *readstore.DirectoryReadStore {
	if r.directoryStore == nil {
		r.directoryStore = readstore.NewDirectoryReadStore(r.dbtx)
	}
	return r.directoryStore
}

func (r *commandReads) bookings() *readstore.BookingReadStore {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.dbtx)
	}
	return r.bookingStore
}

func (r *commandReads) HotelByID(ctx context.Context, id uuid.UUID) (*shared.HotelSnapshot, error) {
	row, err := r.directory().FindHotelByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.HotelSnapshot{ID: row.ID, Name: row.Name, City: row.City}, nil
}

func (r *commandReads) RoomByNumber(ctx context.Context, hotelID uuid.UUID, roomNumber string) (*shared.RoomSnapshot, error) {
	row, err := r.directory().FindRoomByNumber(ctx, hotelID, roomNumber)
	if err != nil {
		return nil, err
	}
	return &shared.RoomSnapshot{
		HotelID:            row.HotelID,
		RoomNumber:         row.RoomNumber,
		PricePerNightCents: row.PricePerNightCents,
	}, nil
}

func (r *commandReads) GuestByID(ctx context.Context, id uuid.UUID) (*shared.GuestSnapshot, error) {
	row, err := r.directory().FindGuestByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.GuestSnapshot{ID: row.ID, Email: row.Email, FullName: row.FullName}, nil
}

func (r *commandReads) ActiveOfferByHotel(ctx context.Context, hotelID uuid.UUID, at time.Time) (*shared.OfferSnapshot, error) {
	row, err := r.directory().FindActiveOfferByHotel(ctx, hotelID, at)
	if err != nil {
		// Absence of an offer is the normal case, not an error.
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &shared.OfferSnapshot{
		ID:         row.ID,
		HotelID:    row.HotelID,
		PercentOff: row.PercentOff,
		Kind:       row.Kind,
		ExpiresAt:  row.ExpiresAt,
	}, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	row, err := r.bookings().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return bookingSnapshot(row)
}

func (r *commandReads) BookingByAuthorizationID(ctx context.Context, authorizationID string) (*shared.BookingSnapshot, error) {
	row, err := r.bookings().FindByAuthorizationID(ctx, authorizationID)
	if err != nil {
		return nil, err
	}
	return bookingSnapshot(row)
}

func bookingSnapshot(row *readstore.BookingRow) (*shared.BookingSnapshot, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored booking status is invalid", err)
	}

	var authorizationID string
	if row.AuthorizationID != nil {
		authorizationID = *row.AuthorizationID
	}

	return &shared.BookingSnapshot{
		ID:              row.ID,
		GuestID:         row.GuestID,
		HotelID:         row.HotelID,
		RoomNumber:      row.RoomNumber,
		StartDate:       row.StartDate,
		EndDate:         row.EndDate,
		OfferID:         row.OfferID,
		OriginalCents:   row.OriginalCents,
		DiscountedCents: row.DiscountedCents,
		AuthorizationID: authorizationID,
		Status:          status,
		CreatedAt:       row.CreatedAt,
	}, nil
}
