package customers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/booking-dashboard/internal/application/customers"
	"github.com/jhoicas/booking-dashboard/internal/application/dto"
	"github.com/jhoicas/booking-dashboard/internal/domain"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/repository"
	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	mu         sync.Mutex
	rows       map[string]*entity.Customer
	statements int
	err        error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[string]*entity.Customer{}}
}

func (r *fakeRepo) Create(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements++
	if r.err != nil {
		return r.err
	}
	cp := *c
	r.rows[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, c *entity.Customer) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements++
	if r.err != nil {
		return 0, r.err
	}
	existing, ok := r.rows[c.ID]
	if !ok {
		return 0, nil
	}
	updated := *c
	updated.DateCreated = existing.DateCreated
	r.rows[c.ID] = &updated
	return 1, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements++
	if r.err != nil {
		return 0, r.err
	}
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) matching(query string) []*entity.Customer {
	q := strings.ToLower(query)
	var out []*entity.Customer
	for _, c := range r.rows {
		if q == "" || strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *fakeRepo) List(_ context.Context, f repository.CustomerFilter) ([]*entity.CustomerSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(f.Query)
	var out []*entity.CustomerSummary
	for i := f.Offset; i < len(all) && i < f.Offset+f.Limit; i++ {
		out = append(out, &entity.CustomerSummary{Customer: *all[i]})
	}
	return out, nil
}

func (r *fakeRepo) Count(_ context.Context, query string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.matching(query)), nil
}

type fakeRevalidator struct {
	paths []string
	err   error
}

func (f *fakeRevalidator) Revalidate(_ context.Context, path string) error {
	f.paths = append(f.paths, path)
	return f.err
}

var fixedNow = time.Date(2024, 1, 8, 15, 30, 0, 0, time.UTC)

func newUseCase(repo *fakeRepo, rv *fakeRevalidator, log *logger.Logger) *customers.CustomerUseCase {
	return customers.NewCustomerUseCase(repo, rv, log, customers.Options{
		PlaceholderImage: "/customers/emil-kowalski.png",
		PageSize:         6,
		Now:              func() time.Time { return fixedNow },
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_InsertaFilaEnCentavos(t *testing.T) {
	repo, rv := newFakeRepo(), &fakeRevalidator{}
	uc := newUseCase(repo, rv, nil)

	c, err := uc.Create(context.Background(), dto.CustomerForm{
		Name:          "Jane Doe",
		AmountDeposit: "50.00",
		AmountTotal:   "200.00",
		Status:        "deposit",
		DateFrom:      "2024-01-10",
		DateTo:        "2024-01-15",
	})
	require.NoError(t, err)
	require.Len(t, repo.rows, 1)

	row := repo.rows[c.ID]
	assert.Equal(t, int64(5000), row.AmountDeposit)
	assert.Equal(t, int64(20000), row.AmountTotal)
	assert.Equal(t, "2024-01-08", row.DateCreated, "date_created es la fecha actual")
	assert.Equal(t, "/customers/emil-kowalski.png", row.ImageURL)
	assert.Equal(t, entity.CustomerStatusDeposit, row.Status)
	assert.NotEmpty(t, row.ID)
	assert.Equal(t, []string{customers.ListPath}, rv.paths, "el listado debe invalidarse tras crear")
}

func TestCreate_ReenvioDuplicaFila(t *testing.T) {
	repo := newFakeRepo()
	uc := newUseCase(repo, &fakeRevalidator{}, nil)

	_, err := uc.Create(context.Background(), validForm())
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), validForm())
	require.NoError(t, err)

	assert.Len(t, repo.rows, 2)
}

func TestCreate_EntradaInvalidaNoEjecutaSentencias(t *testing.T) {
	invalid := []func(*dto.CustomerForm){
		func(f *dto.CustomerForm) { f.Name = "" },
		func(f *dto.CustomerForm) { f.Name = "abc" },
		func(f *dto.CustomerForm) { f.Status = "cancelled" },
		func(f *dto.CustomerForm) { f.Status = "PAID" },
		func(f *dto.CustomerForm) { f.DateFrom = "2024-1" },
		func(f *dto.CustomerForm) { f.DateTo = "" },
	}
	for i, mutate := range invalid {
		t.Run(fmt.Sprintf("caso_%d", i), func(t *testing.T) {
			repo, rv := newFakeRepo(), &fakeRevalidator{}
			uc := newUseCase(repo, rv, nil)
			in := validForm()
			mutate(&in)

			_, err := uc.Create(context.Background(), in)
			var verr *customers.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Fields)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)

			err = uc.Update(context.Background(), "any-id", in)
			require.ErrorAs(t, err, &verr)

			assert.Zero(t, repo.statements, "no debe emitirse ninguna sentencia")
			assert.Empty(t, rv.paths)
		})
	}
}

func TestCreate_ErrorDeBaseDeDatos(t *testing.T) {
	repo, rv := newFakeRepo(), &fakeRevalidator{}
	repo.err = errors.New("connection refused")
	uc := newUseCase(repo, rv, nil)

	c, err := uc.Create(context.Background(), validForm())
	assert.Nil(t, c)
	assert.ErrorIs(t, err, customers.ErrCreateFailed)
	assert.Empty(t, rv.paths, "sin éxito no se invalida el listado")
}

func TestCreate_FalloAlInvalidarNoFallaLaAccion(t *testing.T) {
	repo := newFakeRepo()
	uc := newUseCase(repo, &fakeRevalidator{err: errors.New("redis down")}, nil)

	_, err := uc.Create(context.Background(), validForm())
	assert.NoError(t, err)
	assert.Len(t, repo.rows, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ReemplazaCamposMutables(t *testing.T) {
	repo, rv := newFakeRepo(), &fakeRevalidator{}
	uc := newUseCase(repo, rv, nil)
	c, err := uc.Create(context.Background(), validForm())
	require.NoError(t, err)
	repo.rows[c.ID].ImageURL = "/customers/jane-doe.png"

	in := validForm()
	in.Name = "Jane Smith"
	in.Status = "paid"
	in.AmountTotal = "250.5"
	in.DateTo = "January 20, 2024"
	require.NoError(t, uc.Update(context.Background(), c.ID, in))

	row := repo.rows[c.ID]
	assert.Equal(t, "Jane Smith", row.Name)
	assert.Equal(t, entity.CustomerStatusPaid, row.Status)
	assert.Equal(t, int64(25050), row.AmountTotal)
	assert.Equal(t, "2024-01-20", row.DateTo)
	assert.Equal(t, c.DateCreated, row.DateCreated, "date_created no cambia")
	assert.Equal(t, "/customers/emil-kowalski.png", row.ImageURL, "la imagen vuelve al placeholder")
	assert.Len(t, rv.paths, 2)
}

// Un id inexistente actualiza 0 filas y aun así se reporta éxito: comportamiento
// heredado que se conserva a propósito y solo deja rastro en el log.
func TestUpdate_IdInexistenteReportaExitoSinFilas(t *testing.T) {
	var buf bytes.Buffer
	repo, rv := newFakeRepo(), &fakeRevalidator{}
	uc := newUseCase(repo, rv, logger.NewWithWriter(&buf, "info"))

	err := uc.Update(context.Background(), "00000000-0000-0000-0000-00000000dead", validForm())

	assert.NoError(t, err)
	assert.Empty(t, repo.rows)
	assert.Equal(t, 1, repo.statements)
	assert.Contains(t, buf.String(), `"rows_affected":0`)
	assert.Equal(t, []string{customers.ListPath}, rv.paths)
}

func TestUpdate_ErrorDeBaseDeDatos(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("timeout")
	uc := newUseCase(repo, &fakeRevalidator{}, nil)

	err := uc.Update(context.Background(), "id", validForm())
	assert.ErrorIs(t, err, customers.ErrUpdateFailed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_IdempotenteEnEfecto(t *testing.T) {
	repo, rv := newFakeRepo(), &fakeRevalidator{}
	uc := newUseCase(repo, rv, nil)
	c, err := uc.Create(context.Background(), validForm())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		msg, err := uc.Delete(context.Background(), c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Deleted Customer.", msg)
		assert.NotContains(t, repo.rows, c.ID)
	}
	assert.Len(t, rv.paths, 3)
}

func TestDelete_ErrorDeBaseDeDatos(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("boom")
	uc := newUseCase(repo, &fakeRevalidator{}, nil)

	msg, err := uc.Delete(context.Background(), "id")
	assert.ErrorIs(t, err, customers.ErrDeleteFailed)
	assert.Equal(t, "Database Error: Failed to Delete Customer.", msg)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_NoEncontrado(t *testing.T) {
	uc := newUseCase(newFakeRepo(), &fakeRevalidator{}, nil)
	_, err := uc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_PaginaYFiltra(t *testing.T) {
	repo := newFakeRepo()
	uc := newUseCase(repo, &fakeRevalidator{}, nil)
	for i := 0; i < 7; i++ {
		in := validForm()
		in.Name = fmt.Sprintf("Guest %02d", i)
		_, err := uc.Create(context.Background(), in)
		require.NoError(t, err)
	}

	p1, err := uc.List(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p1.Page)
	assert.Equal(t, 2, p1.TotalPages)
	assert.Equal(t, 7, p1.Total)
	assert.Len(t, p1.Items, 6)
	assert.Equal(t, "Guest 00", p1.Items[0].Name)

	p2, err := uc.List(context.Background(), "", 2)
	require.NoError(t, err)
	require.Len(t, p2.Items, 1)
	assert.Equal(t, "Guest 06", p2.Items[0].Name)

	last, err := uc.List(context.Background(), "", math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 2, last.Page, "una página enorme se acota a la última")
	require.Len(t, last.Items, 1)
	assert.Equal(t, "Guest 06", last.Items[0].Name)

	none, err := uc.List(context.Background(), "nadie", math.MaxInt)
	require.NoError(t, err)
	assert.Equal(t, 1, none.Page)
	assert.Empty(t, none.Items)

	filtered, err := uc.List(context.Background(), " guest 03 ", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Total)
	assert.Equal(t, "guest 03", filtered.Query)
}
