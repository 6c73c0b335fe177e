package customers

import (
	"github.com/jhoicas/booking-dashboard/internal/application/dto"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/money"
)

// ToResponse convierte la entidad al DTO de la API.
func ToResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Email:              c.Email,
		PhoneNumber:        c.PhoneNumber,
		AmountDeposit:      money.InputValue(c.AmountDeposit),
		AmountDepositCents: c.AmountDeposit,
		AmountTotal:        money.InputValue(c.AmountTotal),
		AmountTotalCents:   c.AmountTotal,
		Rooms:              c.Rooms,
		Status:             string(c.Status),
		DateFrom:           c.DateFrom,
		DateTo:             c.DateTo,
		ImageURL:           c.ImageURL,
		DateCreated:        c.DateCreated,
	}
}

// ToListResponse convierte una página del listado.
func ToListResponse(p *CustomerPage) dto.CustomerListResponse {
	items := make([]dto.CustomerRowResponse, 0, len(p.Items))
	for _, s := range p.Items {
		items = append(items, dto.CustomerRowResponse{
			CustomerResponse: ToResponse(&s.Customer),
			TotalInvoices:    s.TotalInvoices,
			TotalPending:     money.InputValue(s.TotalPending),
			TotalPaid:        money.InputValue(s.TotalPaid),
		})
	}
	return dto.CustomerListResponse{
		Items: items,
		PageResponse: dto.PageResponse{
			Page:       p.Page,
			TotalPages: p.TotalPages,
			Total:      p.Total,
		},
	}
}

// FormFromCustomer rellena el formulario de edición con los valores guardados.
func FormFromCustomer(c *entity.Customer) dto.CustomerForm {
	return dto.CustomerForm{
		Name:          c.Name,
		Email:         c.Email,
		PhoneNumber:   c.PhoneNumber,
		AmountDeposit: money.InputValue(c.AmountDeposit),
		AmountTotal:   money.InputValue(c.AmountTotal),
		Rooms:         c.Rooms,
		Status:        string(c.Status),
		DateFrom:      c.DateFrom,
		DateTo:        c.DateTo,
	}
}
