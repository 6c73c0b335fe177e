package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/booking-dashboard/internal/domain"
	"github.com/jhoicas/booking-dashboard/internal/domain/calendar"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `c.id, c.name, c.email, c.phone_number, c.amount_deposit, c.amount_total,
		c.rooms, c.status, c.date_from, c.date_to, c.image_url, c.date_created`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	from, to, created, err := parseDates(c.DateFrom, c.DateTo, c.DateCreated)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO customers (id, name, email, phone_number, amount_deposit, amount_total, rooms, status, date_from, date_to, image_url, date_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.PhoneNumber, c.AmountDeposit, c.AmountTotal,
		c.Rooms, string(c.Status), from, to, c.ImageURL, created,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update actualiza los diez campos mutables. id y date_created no se tocan.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) (int64, error) {
	from, to, _, err := parseDates(c.DateFrom, c.DateTo, "")
	if err != nil {
		return 0, err
	}
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone_number = $4, amount_deposit = $5, amount_total = $6,
		    rooms = $7, status = $8, date_from = $9, date_to = $10, image_url = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.PhoneNumber, c.AmountDeposit, c.AmountTotal,
		c.Rooms, string(c.Status), from, to, c.ImageURL,
	)
	if err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("update customer: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		if isInvalidText(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("delete customer: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers c WHERE c.id = $1`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes con los totales de sus facturas, ordenados por nombre.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.CustomerSummary, error) {
	query := `
		SELECT ` + customerColumns + `,
		       COUNT(i.id) AS total_invoices,
		       COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0)::numeric AS total_pending,
		       COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.amount ELSE 0 END), 0)::numeric AS total_paid
		FROM customers c
		LEFT JOIN invoices i ON i.customer_id = c.id
		WHERE c.name ILIKE $1 OR c.email ILIKE $1
		GROUP BY c.id
		ORDER BY c.name ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, likePattern(f.Query), f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomerSummary
	for rows.Next() {
		var (
			s                 entity.CustomerSummary
			status            string
			from, to, created time.Time
			pending, paid     decimal.Decimal
		)
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.AmountDeposit, &s.AmountTotal,
			&s.Rooms, &status, &from, &to, &s.ImageURL, &created,
			&s.TotalInvoices, &pending, &paid,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		s.Status = entity.CustomerStatus(status)
		s.DateFrom, s.DateTo, s.DateCreated = from.Format(calendar.Layout), to.Format(calendar.Layout), created.Format(calendar.Layout)
		s.TotalPending, s.TotalPaid = pending.IntPart(), paid.IntPart()
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count cuenta los clientes que coinciden con query.
func (r *CustomerRepo) Count(ctx context.Context, query string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM customers c WHERE c.name ILIKE $1 OR c.email ILIKE $1`,
		likePattern(query),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var (
		c                 entity.Customer
		status            string
		from, to, created time.Time
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.AmountDeposit, &c.AmountTotal,
		&c.Rooms, &status, &from, &to, &c.ImageURL, &created,
	); err != nil {
		return nil, err
	}
	c.Status = entity.CustomerStatus(status)
	c.DateFrom = from.Format(calendar.Layout)
	c.DateTo = to.Format(calendar.Layout)
	c.DateCreated = created.Format(calendar.Layout)
	return &c, nil
}

// parseDates convierte las fechas canónicas a time.Time para columnas DATE. Cadena vacía -> time cero.
func parseDates(values ...string) (time.Time, time.Time, time.Time, error) {
	var out [3]time.Time
	for i, v := range values {
		if v == "" {
			continue
		}
		t, err := time.Parse(calendar.Layout, v)
		if err != nil {
			return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("fecha %q: %w", v, domain.ErrInvalidInput)
		}
		out[i] = t
	}
	return out[0], out[1], out[2], nil
}

// ILIKE usa '\' como escape por defecto.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
