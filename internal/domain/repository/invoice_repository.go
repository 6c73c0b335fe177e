package repository

import (
	"context"

	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
)

// InvoiceRepository persistencia mínima de facturas (datos demo y agregados del listado).
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
}
