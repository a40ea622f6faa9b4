package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StayPeriod is a half-open range of calendar dates [start, end).
// Dates are normalized to UTC midnight; a one-night stay has end = start+1d.
type StayPeriod struct {
	start time.Time
	end   time.Time
}

func NewStayPeriod(start, end time.Time) (StayPeriod, error) {
	s := truncateToDate(start)
	e := truncateToDate(end)
	if !s.Before(e) {
		return StayPeriod{}, errors.New("check-in date must be before check-out date")
	}
	return StayPeriod{start: s, end: e}, nil
}

func (p StayPeriod) Start() time.Time {
	return p.start
}

func (p StayPeriod) End() time.Time {
	return p.end
}

func (p StayPeriod) Nights() int {
	return int(p.end.Sub(p.start).Hours() / 24)
}

// Overlaps reports whether two half-open ranges share at least one night.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return other.start.Before(p.end) && p.start.Before(other.end)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", p.start.Format(time.DateOnly), p.end.Format(time.DateOnly))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Money is an amount of currency in whole cents.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("money cannot be negative")
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) MulNights(nights int) Money {
	return Money{cents: m.cents * int64(nights)}
}

func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// ApplyPercentDiscount returns the amount reduced by percent, rounded
// half-up to whole cents.
func (m Money) ApplyPercentDiscount(percent int32) Money {
	if percent <= 0 {
		return m
	}
	if percent >= 100 {
		return Money{cents: 0}
	}
	remaining := m.cents * int64(100-percent)
	return Money{cents: (remaining + 50) / 100}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// RoomAssignment is one reserved room number within a booking, scoped to a
// hotel. The stay range lives on the owning booking and is denormalized into
// the persistence layer for overlap queries.
type RoomAssignment struct {
	HotelID    uuid.UUID
	RoomNumber string
}
