package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste una factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	date, _, _, err := parseDates(inv.Date)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO invoices (id, customer_id, amount, status, date) VALUES ($1, $2, $3, $4, $5)`,
		inv.ID, inv.CustomerID, inv.Amount, string(inv.Status), date,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}
