package notification

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"hotelbook/internal/pkg/config"
	"hotelbook/internal/pkg/errs"
	"hotelbook/internal/usecase/shared"
)

const routingKeyBookingConfirmed = "booking.confirmed"

// AMQPNotifier publishes confirmation messages to a topic exchange. Downstream
// consumers (mail, SMS) pick them up by routing key.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPNotifier(cfg config.AMQPConfig) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to open rabbitmq channel")
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "failed to declare exchange")
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

type bookingConfirmedMessage struct {
	BookingID       string `json:"booking_id"`
	GuestEmail      string `json:"guest_email"`
	GuestName       string `json:"guest_name"`
	HotelName       string `json:"hotel_name"`
	RoomNumber      string `json:"room_number"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	AmountCents     int64  `json:"amount_cents"`
	AuthorizationID string `json:"authorization_id"`
}

func (n *AMQPNotifier) BookingConfirmed(ctx context.Context, guest shared.GuestSnapshot, b shared.BookingSnapshot, hotel shared.HotelSnapshot) error {
	msg := bookingConfirmedMessage{
		BookingID:       b.ID.String(),
		GuestEmail:      guest.Email,
		GuestName:       guest.FullName,
		HotelName:       hotel.Name,
		RoomNumber:      b.RoomNumber,
		StartDate:       b.StartDate.Format(time.DateOnly),
		EndDate:         b.EndDate.Format(time.DateOnly),
		AmountCents:     b.DiscountedCents,
		AuthorizationID: b.AuthorizationID,
	}
	return n.publishJSON(ctx, routingKeyBookingConfirmed, msg)
}

func (n *AMQPNotifier) publishJSON(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errs.Wrap(err, "failed to marshal notification")
	}
	err = n.ch.PublishWithContext(ctx, n.exchange, key, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish notification")
	}
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
