package customers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/booking-dashboard/internal/application/dto"
	"github.com/jhoicas/booking-dashboard/internal/domain"
	"github.com/jhoicas/booking-dashboard/internal/domain/calendar"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/repository"
	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

// ListPath vista del listado de clientes: se invalida tras cada mutación y es el destino de la redirección.
const ListPath = "/dashboard/customers"

// Errores opacos de persistencia. Envuelven la causa para el log; el usuario solo ve el mensaje fijo.
var (
	ErrCreateFailed = errors.New("crear cliente: error de base de datos")
	ErrUpdateFailed = errors.New("actualizar cliente: error de base de datos")
	ErrDeleteFailed = errors.New("eliminar cliente: error de base de datos")
)

// ValidationError errores por campo; no se intentó ninguna escritura.
type ValidationError struct {
	Fields dto.FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "validación de cliente: campos inválidos: " + strings.Join(keys, ", ")
}

// Unwrap permite errors.Is(err, domain.ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return domain.ErrInvalidInput }

// Revalidator marca como obsoleta una vista renderizada para que se recalcule en el próximo acceso.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}

// Options parámetros del caso de uso.
type Options struct {
	PlaceholderImage string
	PageSize         int
	Now              func() time.Time
}

// CustomerPage página del listado.
type CustomerPage struct {
	Items      []*entity.CustomerSummary
	Query      string
	Page       int
	TotalPages int
	Total      int
}

// CustomerUseCase acciones de validación y persistencia de clientes (crear, editar, eliminar) y lecturas del dashboard.
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	validator   *Validator
	revalidator Revalidator
	log         *logger.Logger
	opts        Options
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, revalidator Revalidator, log *logger.Logger, opts Options) *CustomerUseCase {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 6
	}
	if opts.PlaceholderImage == "" {
		opts.PlaceholderImage = "/customers/emil-kowalski.png"
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerUseCase{
		repo:        repo,
		validator:   NewValidator(),
		revalidator: revalidator,
		log:         log.Named("customers"),
		opts:        opts,
	}
}

// Create valida el formulario e inserta un cliente nuevo con date_created = hoy.
// Reenviar el mismo formulario crea otra fila.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerForm) (*entity.Customer, error) {
	v, fields := uc.validator.Validate(in)
	if fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	customer := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          v.Name,
		Email:         v.Email,
		PhoneNumber:   v.PhoneNumber,
		AmountDeposit: v.AmountDeposit,
		AmountTotal:   v.AmountTotal,
		Rooms:         v.Rooms,
		Status:        v.Status,
		DateFrom:      v.DateFrom,
		DateTo:        v.DateTo,
		ImageURL:      uc.opts.PlaceholderImage,
		DateCreated:   calendar.Today(uc.opts.Now()),
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		uc.log.Error().Err(err).Msg("crear cliente")
		return nil, fmt.Errorf("%w: %v", ErrCreateFailed, err)
	}

	uc.revalidate(ctx)
	return customer, nil
}

// Update valida el formulario y reemplaza los campos mutables del cliente id.
// La imagen vuelve al placeholder: no es un campo del formulario.
// Un id inexistente no es error: la sentencia afecta 0 filas y se registra una advertencia.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerForm) error {
	v, fields := uc.validator.Validate(in)
	if fields != nil {
		return &ValidationError{Fields: fields}
	}

	customer := &entity.Customer{
		ID:            id,
		Name:          v.Name,
		Email:         v.Email,
		PhoneNumber:   v.PhoneNumber,
		AmountDeposit: v.AmountDeposit,
		AmountTotal:   v.AmountTotal,
		Rooms:         v.Rooms,
		Status:        v.Status,
		DateFrom:      v.DateFrom,
		DateTo:        v.DateTo,
		ImageURL:      uc.opts.PlaceholderImage,
	}
	rows, err := uc.repo.Update(ctx, customer)
	if err != nil {
		uc.log.Error().Err(err).Str("customer_id", id).Msg("actualizar cliente")
		return fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	if rows == 0 {
		uc.log.Warn().Str("customer_id", id).Int64("rows_affected", rows).Msg("actualizar cliente: id inexistente")
	}

	uc.revalidate(ctx)
	return nil
}

// Delete elimina el cliente id. Devuelve el mensaje de éxito aunque no existiera la fila.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) (string, error) {
	rows, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.log.Error().Err(err).Str("customer_id", id).Msg("eliminar cliente")
		return dto.MsgDeleteFailed, fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	if rows == 0 {
		uc.log.Warn().Str("customer_id", id).Int64("rows_affected", rows).Msg("eliminar cliente: id inexistente")
	}

	uc.revalidate(ctx)
	return dto.MsgDeleted, nil
}

// Get obtiene un cliente por id (domain.ErrNotFound si no existe).
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// List devuelve la página page (desde 1) de clientes filtrados por query.
func (uc *CustomerUseCase) List(ctx context.Context, query string, page int) (*CustomerPage, error) {
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}
	total, err := uc.repo.Count(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("contar clientes: %w", err)
	}
	totalPages := (total + uc.opts.PageSize - 1) / uc.opts.PageSize
	// Más allá de la última página se sirve la última; evita desbordar el offset.
	if page > totalPages {
		page = max(totalPages, 1)
	}
	items, err := uc.repo.List(ctx, repository.CustomerFilter{
		Query:  query,
		Limit:  uc.opts.PageSize,
		Offset: (page - 1) * uc.opts.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return &CustomerPage{
		Items:      items,
		Query:      query,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

func (uc *CustomerUseCase) revalidate(ctx context.Context) {
	if uc.revalidator == nil {
		return
	}
	if err := uc.revalidator.Revalidate(ctx, ListPath); err != nil {
		uc.log.Warn().Err(err).Str("path", ListPath).Msg("invalidar vista")
	}
}
