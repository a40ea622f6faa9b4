//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotelbook/internal/domain/booking"
	"hotelbook/internal/domain/payment"
	"hotelbook/internal/infra"
	"hotelbook/internal/usecase/commands"
	"hotelbook/internal/usecase/shared"
)

type roomKey struct {
	hotelID    uuid.UUID
	roomNumber string
}

// fakeStore is an in-memory stand-in for the unit of work and all of its
// repositories. It implements shared.UnitOfWork, shared.Tx, shared.CommandReads,
// shared.BookingRepository and shared.AvailabilityChecker at once.
type fakeStore struct {
	mu sync.Mutex

	// txMu serializes whole transactions, mirroring the row lock the real
	// availability check takes.
	txMu sync.Mutex

	hotels   map[uuid.UUID]shared.HotelSnapshot
	rooms    map[roomKey]shared.RoomSnapshot
	guests   map[uuid.UUID]shared.GuestSnapshot
	offers   map[uuid.UUID]shared.OfferSnapshot // keyed by hotel
	bookings map[uuid.UUID]*shared.BookingSnapshot

	// commitErr, when set, fails Within after fn returns successfully,
	// simulating a commit failure with all local writes rolled back.
	commitErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hotels:   make(map[uuid.UUID]shared.HotelSnapshot),
		rooms:    make(map[roomKey]shared.RoomSnapshot),
		guests:   make(map[uuid.UUID]shared.GuestSnapshot),
		offers:   make(map[uuid.UUID]shared.OfferSnapshot),
		bookings: make(map[uuid.UUID]*shared.BookingSnapshot),
	}
}

func (f *fakeStore) addHotel() shared.HotelSnapshot {
	h := shared.HotelSnapshot{ID: uuid.New(), Name: "Grand Plaza", City: "Lisbon"}
	f.hotels[h.ID] = h
	return h
}

func (f *fakeStore) addRoom(hotelID uuid.UUID, number string, priceCents int64) shared.RoomSnapshot {
	r := shared.RoomSnapshot{HotelID: hotelID, RoomNumber: number, PricePerNightCents: priceCents}
	f.rooms[roomKey{hotelID, number}] = r
	return r
}

func (f *fakeStore) addGuest() shared.GuestSnapshot {
	g := shared.GuestSnapshot{ID: uuid.New(), Email: "ana@example.com", FullName: "Ana Costa"}
	f.guests[g.ID] = g
	return g
}

func (f *fakeStore) addOffer(hotelID uuid.UUID, percent int32, expiresAt time.Time) shared.OfferSnapshot {
	o := shared.OfferSnapshot{ID: uuid.New(), HotelID: hotelID, PercentOff: percent, Kind: "seasonal", ExpiresAt: expiresAt}
	f.offers[hotelID] = o
	return o
}

func (f *fakeStore) addBooking(snap shared.BookingSnapshot) *shared.BookingSnapshot {
	stored := snap
	f.bookings[stored.ID] = &stored
	return &stored
}

// UnitOfWork

func (f *fakeStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	before := f.snapshotBookings()
	if err := fn(ctx, f); err != nil {
		f.restoreBookings(before)
		return err
	}
	if f.commitErr != nil {
		f.restoreBookings(before)
		return f.commitErr
	}
	return nil
}

func (f *fakeStore) snapshotBookings() map[uuid.UUID]*shared.BookingSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	before := make(map[uuid.UUID]*shared.BookingSnapshot, len(f.bookings))
	for id, b := range f.bookings {
		copied := *b
		before[id] = &copied
	}
	return before
}

func (f *fakeStore) restoreBookings(before map[uuid.UUID]*shared.BookingSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.bookings = before
}

func (f *fakeStore) bookingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.bookings)
}

func (f *fakeStore) CommandReads() shared.CommandReads { return f }

// Tx

func (f *fakeStore) Bookings() shared.BookingRepository       { return f }
func (f *fakeStore) Availability() shared.AvailabilityChecker { return f }
func (f *fakeStore) Reads() shared.CommandReads               { return f }

// AvailabilityChecker

func (f *fakeStore) IsAvailable(_ context.Context, hotelID uuid.UUID, roomNumber string, stay booking.StayPeriod) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.rooms[roomKey{hotelID, roomNumber}]; !ok {
		return false, infra.WrapRepoErr(infra.KindNotFound, "room not found", nil)
	}
	for _, b := range f.bookings {
		if b.HotelID != hotelID || b.RoomNumber != roomNumber {
			continue
		}
		if b.Status != booking.StatusPending && b.Status != booking.StatusConfirmed {
			continue
		}
		if b.StartDate.Before(stay.End()) && stay.Start().Before(b.EndDate) {
			return false, nil
		}
	}
	return true, nil
}

// BookingRepository

func (f *fakeStore) Create(_ context.Context, b *booking.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	room := b.Rooms()[0]
	f.bookings[b.ID()] = &shared.BookingSnapshot{
		ID:              b.ID(),
		GuestID:         b.GuestID(),
		HotelID:         room.HotelID,
		RoomNumber:      room.RoomNumber,
		StartDate:       b.Stay().Start(),
		EndDate:         b.Stay().End(),
		OfferID:         b.OfferID(),
		OriginalCents:   b.Quote().Original.Cents(),
		DiscountedCents: b.Quote().Discounted.Cents(),
		Status:          b.Status(),
	}
	return nil
}

func (f *fakeStore) AttachAuthorization(_ context.Context, bookingID uuid.UUID, authorizationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.Status != booking.StatusPending {
		return infra.WrapRepoErr(infra.KindNotFound, "no pending booking", nil)
	}
	b.AuthorizationID = authorizationID
	return nil
}

func (f *fakeStore) TransitionStatus(_ context.Context, bookingID uuid.UUID, from, to booking.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[bookingID]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

// CommandReads

func (f *fakeStore) HotelByID(_ context.Context, id uuid.UUID) (*shared.HotelSnapshot, error) {
	if h, ok := f.hotels[id]; ok {
		return &h, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "hotel not found", nil)
}

func (f *fakeStore) RoomByNumber(_ context.Context, hotelID uuid.UUID, roomNumber string) (*shared.RoomSnapshot, error) {
	if r, ok := f.rooms[roomKey{hotelID, roomNumber}]; ok {
		return &r, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "room not found", nil)
}

func (f *fakeStore) GuestByID(_ context.Context, id uuid.UUID) (*shared.GuestSnapshot, error) {
	if g, ok := f.guests[id]; ok {
		return &g, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "guest not found", nil)
}

func (f *fakeStore) ActiveOfferByHotel(_ context.Context, hotelID uuid.UUID, at time.Time) (*shared.OfferSnapshot, error) {
	if o, ok := f.offers[hotelID]; ok && o.ExpiresAt.After(at) {
		return &o, nil
	}
	return nil, nil
}

func (f *fakeStore) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if b, ok := f.bookings[id]; ok {
		snap := *b
		return &snap, nil
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", nil)
}

func (f *fakeStore) BookingByAuthorizationID(_ context.Context, authorizationID string) (*shared.BookingSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, b := range f.bookings {
		if b.AuthorizationID == authorizationID {
			snap := *b
			return &snap, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "booking not found", nil)
}

// fakeGateway records authorization traffic.
type fakeGateway struct {
	mu sync.Mutex

	createErr error
	status    payment.AuthorizationStatus

	created []string
	voided  []string
	nextID  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{status: payment.StatusSucceeded}
}

func (g *fakeGateway) CreateAuthorization(_ context.Context, _ int64, _ string) (*commands.Authorization, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.createErr != nil {
		return nil, g.createErr
	}
	g.nextID++
	id := fmt.Sprintf("auth_%d", g.nextID)
	g.created = append(g.created, id)
	return &commands.Authorization{ID: id, ClientSecret: "secret_" + id}, nil
}

func (g *fakeGateway) VoidAuthorization(_ context.Context, authorizationID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.voided = append(g.voided, authorizationID)
	return nil
}

func (g *fakeGateway) GetAuthorization(_ context.Context, _ string) (payment.AuthorizationStatus, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.status, nil
}

// fakeNotifier signals each delivery so tests can wait for the async send.
type fakeNotifier struct {
	mu        sync.Mutex
	delivered chan shared.BookingSnapshot
	err       error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{delivered: make(chan shared.BookingSnapshot, 8)}
}

func (n *fakeNotifier) BookingConfirmed(_ context.Context, _ shared.GuestSnapshot, b shared.BookingSnapshot, _ shared.HotelSnapshot) error {
	n.mu.Lock()
	err := n.err
	n.mu.Unlock()

	if err != nil {
		return err
	}
	n.delivered <- b
	return nil
}
