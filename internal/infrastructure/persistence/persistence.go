// Package persistence abre el backend configurado (PostgreSQL o SQLite) y construye los repositorios.
package persistence

import (
	"context"
	"fmt"

	"github.com/jhoicas/booking-dashboard/internal/domain/repository"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/postgres"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/sqlite"
	"github.com/jhoicas/booking-dashboard/pkg/config"
	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

// Repositories repositorios listos para usar y la función que libera la conexión.
type Repositories struct {
	Customers repository.CustomerRepository
	Invoices  repository.InvoiceRepository
	Close     func()
}

// Open conecta con el driver de cfg, aplica las migraciones embebidas y devuelve los repositorios.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.ApplyMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones PostgreSQL: %w", err)
		}
		log.Info().Str("driver", cfg.Driver).Str("host", cfg.Host).Msg("base de datos lista")
		return &Repositories{
			Customers: postgres.NewCustomerRepository(pool),
			Invoices:  postgres.NewInvoiceRepository(pool),
			Close:     pool.Close,
		}, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("abrir SQLite: %w", err)
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("base de datos lista")
		return &Repositories{
			Customers: sqlite.NewCustomerRepository(store.DB()),
			Invoices:  sqlite.NewInvoiceRepository(store.DB()),
			Close: func() {
				if err := store.Close(); err != nil {
					log.Warn().Err(err).Msg("cerrar SQLite")
				}
			},
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER no soportado: %q", cfg.Driver)
}
