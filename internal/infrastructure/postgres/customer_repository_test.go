package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/booking-dashboard/internal/domain"
)

func TestParseDates(t *testing.T) {
	from, to, created, err := parseDates("2024-01-10", "2024-01-15", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), to)
	assert.True(t, created.IsZero())

	_, _, _, err = parseDates("10/01/2024")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%%", likePattern(""))
	assert.Equal(t, "%jane%", likePattern("jane"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}

func TestErroresPg(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	invalid := fmt.Errorf("update: %w", &pgconn.PgError{Code: "22P02"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(invalid))
	assert.True(t, isInvalidText(invalid))
	assert.False(t, isInvalidText(errors.New("conexión rechazada")))
}
