package components

import (
	"hotelbook/internal/handler"
	"hotelbook/internal/handler/api"
	"hotelbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewInvoiceHandler,
		api.NewPaymentWebhookHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
