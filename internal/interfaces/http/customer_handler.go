package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/booking-dashboard/internal/application/customers"
	"github.com/jhoicas/booking-dashboard/internal/application/dto"
	"github.com/jhoicas/booking-dashboard/internal/domain"
)

// CustomerHandler API JSON de clientes.
type CustomerHandler struct {
	uc *customers.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Description  Filtra por nombre o email (sin distinguir mayúsculas) y pagina. Incluye totales de facturas.
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  false  "texto a buscar"
// @Param        page   query  int     false  "página (desde 1)"
// @Success      200  {object}  dto.CustomerListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	page, err := h.uc.List(c.UserContext(), c.Query("query"), c.QueryInt("page", 1))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(customers.ToListResponse(page))
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(customers.ToResponse(customer))
}

// Create godoc
// @Summary      Crear cliente
// @Description  Los importes se envían como texto decimal ("50.00") y las fechas en cualquier formato reconocible.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CustomerForm  true  "datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerForm
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return actionError(c, err, dto.MsgMissingFieldsCreate, dto.MsgCreateFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(customers.ToResponse(customer))
}

// Update godoc
// @Summary      Actualizar cliente
// @Description  Reemplaza los campos editables. Un id inexistente no es error.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "ID del cliente"
// @Param        body  body      dto.CustomerForm  true  "datos del cliente"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerForm
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Update(c.UserContext(), c.Params("id"), in); err != nil {
		return actionError(c, err, dto.MsgMissingFieldsUpdate, dto.MsgUpdateFailed)
	}
	return c.JSON(dto.MessageResponse{Message: dto.MsgUpdated})
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	msg, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "DATABASE", Message: msg})
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}

// actionError traduce el error de una acción de escritura a la respuesta JSON.
func actionError(c *fiber.Ctx, err error, missingMsg, dbMsg string) error {
	var verr *customers.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:    "VALIDATION",
			Message: missingMsg,
			Errors:  verr.Fields,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "DATABASE", Message: dbMsg})
}
