package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/booking-dashboard/internal/application/customers"
	"github.com/jhoicas/booking-dashboard/internal/application/dto"
	"github.com/jhoicas/booking-dashboard/internal/domain"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/cache"
	"github.com/jhoicas/booking-dashboard/internal/interfaces/http/views"
	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

// CSRFContextKey clave en c.Locals donde el middleware CSRF deja el token.
const CSRFContextKey = "csrf"

// csrfSlot marcador que ocupa el token CSRF en las vistas cacheadas; se sustituye al servir.
const csrfSlot = "__csrf_token__"

// CacheHeader indica si el listado se sirvió desde la caché (HIT/MISS).
const CacheHeader = "X-View-Cache"

// DashboardHandler páginas HTML de gestión de clientes.
type DashboardHandler struct {
	uc    *customers.CustomerUseCase
	pdf   *customers.PDFUseCase
	views fiber.Views
	cache *cache.ViewCache
	log   *logger.Logger
}

// NewDashboardHandler construye el handler. viewCache puede ser nil (sin caché).
func NewDashboardHandler(uc *customers.CustomerUseCase, pdf *customers.PDFUseCase, v fiber.Views, viewCache *cache.ViewCache, log *logger.Logger) *DashboardHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &DashboardHandler{uc: uc, pdf: pdf, views: v, cache: viewCache, log: log.Named("dashboard")}
}

// List GET /dashboard/customers?query=&page=
func (h *DashboardHandler) List(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("query"))
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	variant := url.Values{"query": {query}, "page": {strconv.Itoa(page)}}.Encode()

	entry := cache.Entry{Generation: -1}
	if h.cache != nil {
		entry = h.cache.Lookup(c.UserContext(), customers.ListPath, variant)
	}
	body := entry.Body
	if entry.Hit {
		c.Set(CacheHeader, "HIT")
	} else {
		p, err := h.uc.List(c.UserContext(), query, page)
		if err != nil {
			return err
		}
		out, err := h.renderString("customers/index", fiber.Map{
			"Title":      "Customers",
			"CSRF":       csrfSlot,
			"Items":      p.Items,
			"Query":      p.Query,
			"Page":       p.Page,
			"TotalPages": p.TotalPages,
		})
		if err != nil {
			return err
		}
		body = out
		if h.cache != nil {
			h.cache.Save(c.UserContext(), customers.ListPath, variant, entry.Generation, body)
		}
		c.Set(CacheHeader, "MISS")
		h.log.Debug().Str("variant", variant).Int("rows", len(p.Items)).Msg("listado renderizado")
	}

	c.Type("html", "utf-8")
	return c.SendString(strings.ReplaceAll(body, csrfSlot, csrfToken(c)))
}

// CreateForm GET /dashboard/customers/create
func (h *DashboardHandler) CreateForm(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "customers/create", h.formBinding(c, "Create Customer", "", dto.CustomerForm{}, dto.FormState{}))
}

// Create POST /dashboard/customers
func (h *DashboardHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	if _, err := h.uc.Create(c.UserContext(), in); err != nil {
		status, state := formFailure(err, dto.MsgMissingFieldsCreate, dto.MsgCreateFailed)
		return h.render(c, status, "customers/create", h.formBinding(c, "Create Customer", "", in, state))
	}
	return redirectToList(c)
}

// EditForm GET /dashboard/customers/:id/edit
func (h *DashboardHandler) EditForm(c *fiber.Ctx) error {
	id := c.Params("id")
	customer, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.renderError(c, fiber.StatusNotFound, "Could not find the requested customer.")
		}
		return err
	}
	return h.render(c, fiber.StatusOK, "customers/edit", h.formBinding(c, "Edit Customer", id, customers.FormFromCustomer(customer), dto.FormState{}))
}

// Update POST /dashboard/customers/:id
func (h *DashboardHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.CustomerForm
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "formulario inválido")
	}
	if err := h.uc.Update(c.UserContext(), id, in); err != nil {
		status, state := formFailure(err, dto.MsgMissingFieldsUpdate, dto.MsgUpdateFailed)
		return h.render(c, status, "customers/edit", h.formBinding(c, "Edit Customer", id, in, state))
	}
	return redirectToList(c)
}

// Delete POST /dashboard/customers/:id/delete
func (h *DashboardHandler) Delete(c *fiber.Ctx) error {
	msg, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.renderError(c, fiber.StatusInternalServerError, msg)
	}
	return redirectToList(c)
}

// ConfirmationPDF GET /dashboard/customers/:id/confirmation.pdf
func (h *DashboardHandler) ConfirmationPDF(c *fiber.Ctx) error {
	b, filename, err := h.pdf.DownloadConfirmation(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.renderError(c, fiber.StatusNotFound, "Could not find the requested customer.")
		}
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(b)
}

func (h *DashboardHandler) formBinding(c *fiber.Ctx, title, id string, form dto.CustomerForm, state dto.FormState) fiber.Map {
	return fiber.Map{
		"Title": title,
		"CSRF":  csrfToken(c),
		"ID":    id,
		"Form":  form,
		"State": state,
	}
}

// formFailure estado del formulario tras una acción fallida: 422 con errores por campo o 500 con el mensaje de base de datos.
func formFailure(err error, missingMsg, dbMsg string) (int, dto.FormState) {
	var verr *customers.ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusUnprocessableEntity, dto.FormState{Message: missingMsg, Errors: verr.Fields}
	}
	return fiber.StatusInternalServerError, dto.FormState{Message: dbMsg}
}

func (h *DashboardHandler) renderError(c *fiber.Ctx, status int, msg string) error {
	return h.render(c, status, "errors/error", fiber.Map{
		"Title":   strconv.Itoa(status),
		"Status":  status,
		"Message": msg,
	})
}

func (h *DashboardHandler) render(c *fiber.Ctx, status int, name string, bind fiber.Map) error {
	out, err := h.renderString(name, bind)
	if err != nil {
		return err
	}
	c.Status(status)
	c.Type("html", "utf-8")
	return c.SendString(out)
}

func (h *DashboardHandler) renderString(name string, bind fiber.Map) (string, error) {
	var buf bytes.Buffer
	if err := h.views.Render(&buf, name, bind, views.Layout); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// redirectToList navega al listado: 303 para formularios normales, HX-Redirect para peticiones htmx.
func redirectToList(c *fiber.Ctx) error {
	if c.Get("HX-Request") == "true" {
		c.Set("HX-Redirect", customers.ListPath)
		return c.SendStatus(fiber.StatusOK)
	}
	return c.Redirect(customers.ListPath, fiber.StatusSeeOther)
}

func csrfToken(c *fiber.Ctx) string {
	s, _ := c.Locals(CSRFContextKey).(string)
	return s
}
