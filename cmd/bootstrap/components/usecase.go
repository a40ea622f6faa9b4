package components

import (
	"hotelbook/internal/domain/booking"
	"hotelbook/internal/pkg/clock"
	"hotelbook/internal/pkg/config"
	"hotelbook/internal/usecase/commands"
	"hotelbook/internal/usecase/queries"
	"hotelbook/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	booking.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
		commands.NewPaymentEventCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewInvoiceQueries,
	),
)

func NewBookingCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	gateway commands.PaymentGateway,
	factory *booking.Factory,
	clk clock.Clock,
) commands.BookingCommands {
	return commands.NewBookingCommands(uow, gateway, factory, clk, cfg.Payment.Currency, cfg.Payment.AuthTimeout)
}
