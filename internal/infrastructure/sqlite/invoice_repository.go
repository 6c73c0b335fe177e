package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre SQLite.
type InvoiceRepo struct {
	db *sql.DB
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

// Create persiste una factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), inv.Date,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}
