package components

import (
	"context"

	"hotelbook/internal/infra/invoice"
	"hotelbook/internal/infra/notification"
	paymentgw "hotelbook/internal/infra/payment"
	"hotelbook/internal/pkg/config"
	"hotelbook/internal/usecase/commands"
	"hotelbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
		fx.Annotate(
			NewNotifier,
			fx.As(new(commands.Notifier)),
		),
		fx.Annotate(
			invoice.NewTextFormatter,
			fx.As(new(queries.InvoiceFormatter)),
		),
	),
)

func NewPaymentGateway(cfg config.Config) (*paymentgw.OmiseGateway, error) {
	return paymentgw.NewOmiseGateway(cfg.Payment)
}

func NewNotifier(lc fx.Lifecycle, cfg config.Config) (*notification.AMQPNotifier, error) {
	notifier, err := notification.NewAMQPNotifier(cfg.AMQP)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return notifier.Close()
		},
	})

	return notifier, nil
}
