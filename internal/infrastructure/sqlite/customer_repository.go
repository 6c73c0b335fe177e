package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/booking-dashboard/internal/domain"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `c.id, c.name, c.email, c.phone_number, c.amount_deposit, c.amount_total,
		c.rooms, c.status, c.date_from, c.date_to, c.image_url, c.date_created`

// CustomerRepo implementación de CustomerRepository sobre SQLite. Las fechas se guardan como TEXT YYYY-MM-DD.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepository construye el adaptador.
func NewCustomerRepository(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, email, phone_number, amount_deposit, amount_total, rooms, status, date_from, date_to, image_url, date_created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.PhoneNumber, c.AmountDeposit, c.AmountTotal,
		c.Rooms, string(c.Status), c.DateFrom, c.DateTo, c.ImageURL, c.DateCreated,
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
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = ?, email = ?, phone_number = ?, amount_deposit = ?, amount_total = ?,
		    rooms = ?, status = ?, date_from = ?, date_to = ?, image_url = ?
		WHERE id = ?`,
		c.Name, c.Email, c.PhoneNumber, c.AmountDeposit, c.AmountTotal,
		c.Rooms, string(c.Status), c.DateFrom, c.DateTo, c.ImageURL, c.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("update customer: %w", err)
	}
	return res.RowsAffected()
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete customer: %w", err)
	}
	return res.RowsAffected()
}

// GetByID obtiene un cliente por ID. (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers c WHERE c.id = ?`, id)
	var (
		c      entity.Customer
		status string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.AmountDeposit, &c.AmountTotal,
		&c.Rooms, &status, &c.DateFrom, &c.DateTo, &c.ImageURL, &c.DateCreated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c.Status = entity.CustomerStatus(status)
	return &c, nil
}

// List lista clientes con los totales de sus facturas, ordenados por nombre.
// LIKE en SQLite no distingue mayúsculas para ASCII.
func (r *CustomerRepo) List(ctx context.Context, f repository.CustomerFilter) ([]*entity.CustomerSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+customerColumns+`,
		       COUNT(i.id),
		       COALESCE(SUM(CASE WHEN i.status = 'pending' THEN i.amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN i.status = 'paid' THEN i.amount ELSE 0 END), 0)
		FROM customers c
		LEFT JOIN invoices i ON i.customer_id = c.id
		WHERE c.name LIKE ? ESCAPE '\' OR c.email LIKE ? ESCAPE '\'
		GROUP BY c.id
		ORDER BY c.name ASC
		LIMIT ? OFFSET ?`,
		likePattern(f.Query), likePattern(f.Query), f.Limit, f.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.CustomerSummary
	for rows.Next() {
		var (
			s      entity.CustomerSummary
			status string
		)
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.PhoneNumber, &s.AmountDeposit, &s.AmountTotal,
			&s.Rooms, &status, &s.DateFrom, &s.DateTo, &s.ImageURL, &s.DateCreated,
			&s.TotalInvoices, &s.TotalPending, &s.TotalPaid,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		s.Status = entity.CustomerStatus(status)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Count cuenta los clientes que coinciden con query.
func (r *CustomerRepo) Count(ctx context.Context, query string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers c WHERE c.name LIKE ? ESCAPE '\' OR c.email LIKE ? ESCAPE '\'`,
		likePattern(query), likePattern(query),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "PRIMARY KEY constraint failed")
}
