package repository

import (
	"context"

	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
)

// CustomerFilter criterios del listado de clientes.
// Query filtra por nombre o email (sin distinguir mayúsculas); vacío no filtra.
type CustomerFilter struct {
	Query  string
	Limit  int
	Offset int
}

// CustomerRepository define el puerto de persistencia para Customer.
// Cada operación de escritura ejecuta una única sentencia.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// Update reemplaza los campos mutables y devuelve las filas afectadas (0 si el id no existe).
	Update(ctx context.Context, customer *entity.Customer) (int64, error)
	// Delete elimina por id y devuelve las filas afectadas (0 si el id no existe).
	Delete(ctx context.Context, id string) (int64, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.CustomerSummary, error)
	Count(ctx context.Context, query string) (int, error)
}
