package http_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/booking-dashboard/internal/application/customers"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/booking-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/booking-dashboard/internal/interfaces/http"
	"github.com/jhoicas/booking-dashboard/internal/interfaces/http/views"
	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app   *fiber.App
	store *sqlite.Store
}

type envOptions struct {
	jwtSecret string
	csrf      bool
}

// newTestEnv arma la aplicación completa sobre SQLite en memoria y caché en memoria.
func newTestEnv(t *testing.T, opts envOptions) *testEnv {
	t.Helper()
	store, err := sqlite.Open(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	log := logger.Nop()
	viewCache := cache.NewViewCache(cache.NewMemoryStore(), time.Minute, log)
	repo := sqlite.NewCustomerRepository(store.DB())
	uc := customers.NewCustomerUseCase(repo, viewCache, log, customers.Options{
		PlaceholderImage: "/customers/emil-kowalski.png",
		PageSize:         6,
		Now:              func() time.Time { return time.Date(2024, 1, 8, 10, 0, 0, 0, time.UTC) },
	})

	app := fiber.New(fiber.Config{
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: apphttp.ErrorHandler(log),
	})
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC: uc,
		PDFUC:      customers.NewPDFUseCase(repo, infrapdf.NewMarotoPDFGenerator("Test Hotel")),
		Views:      views.New(),
		ViewCache:  viewCache,
		Logger:     log,
		JWTSecret:  opts.jwtSecret,
		CSRF:       opts.csrf,
	})
	return &testEnv{app: app, store: store}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func validPayload() map[string]string {
	return map[string]string{
		"name":           "Jane Doe",
		"email":          "jane@example.com",
		"phone_number":   "+1 555 0100",
		"amount_deposit": "50.00",
		"amount_total":   "200.00",
		"rooms":          "101",
		"status":         "deposit",
		"date_from":      "2024-01-10",
		"date_to":        "2024-01-15",
	}
}

func validValues() url.Values {
	v := url.Values{}
	for k, val := range validPayload() {
		v.Set(k, val)
	}
	return v
}
