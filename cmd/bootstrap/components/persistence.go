package components

import (
	"hotelbook/internal/infra/db"
	"hotelbook/internal/infra/readstore"
	"hotelbook/internal/infra/uow"
	"hotelbook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Read-side store for queries
		fx.Annotate(
			readstore.NewBookingViewStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
