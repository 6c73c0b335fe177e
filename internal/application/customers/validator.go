package customers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/booking-dashboard/internal/application/dto"
	"github.com/jhoicas/booking-dashboard/internal/domain/calendar"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/money"
)

// Mensajes de validación por campo.
const (
	msgName         = "Name must be at least 4 characters."
	msgStatus       = "Please select a customer status."
	msgAmount       = "Please enter a valid amount."
	msgAmountNonNeg = "Please enter an amount of $0 or more."
	msgDate         = "Please enter a valid date."
)

// customerSchema reglas del formulario. Los nombres de campo de los errores son los del tag form.
type customerSchema struct {
	Name          string `form:"name" validate:"required,min=4"`
	Email         string `form:"email"`
	PhoneNumber   string `form:"phone_number"`
	AmountDeposit string `form:"amount_deposit" validate:"required,amount,nonnegative"`
	AmountTotal   string `form:"amount_total" validate:"required,amount,nonnegative"`
	Rooms         string `form:"rooms"`
	Status        string `form:"status" validate:"required,oneof=deposit pending paid"`
	DateFrom      string `form:"date_from" validate:"required,min=8,calendardate"`
	DateTo        string `form:"date_to" validate:"required,min=8,calendardate"`
}

// ValidatedCustomer registro tipado y normalizado listo para persistir:
// importes en centavos, fechas YYYY-MM-DD y estado de la enumeración.
type ValidatedCustomer struct {
	Name          string
	Email         string
	PhoneNumber   string
	AmountDeposit int64
	AmountTotal   int64
	Rooms         string
	Status        entity.CustomerStatus
	DateFrom      string
	DateTo        string
}

// Validator valida y normaliza CustomerForm.
type Validator struct {
	v *validator.Validate
}

// NewValidator registra las reglas propias (amount, nonnegative, calendardate).
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, err := money.ParseAmount(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		d, err := money.ParseAmount(fl.Field().String())
		return err == nil && !d.IsNegative()
	})
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := calendar.Parse(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Validate devuelve el registro tipado o los errores por campo (nunca ambos).
func (val *Validator) Validate(in dto.CustomerForm) (*ValidatedCustomer, dto.FieldErrors) {
	s := customerSchema{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		AmountDeposit: strings.TrimSpace(in.AmountDeposit),
		AmountTotal:   strings.TrimSpace(in.AmountTotal),
		Rooms:         strings.TrimSpace(in.Rooms),
		Status:        strings.TrimSpace(in.Status),
		DateFrom:      strings.TrimSpace(in.DateFrom),
		DateTo:        strings.TrimSpace(in.DateTo),
	}

	if err := val.v.Struct(s); err != nil {
		fields := dto.FieldErrors{}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fields.Add("form", err.Error())
			return nil, fields
		}
		for _, fe := range verrs {
			fields.Add(fe.Field(), messageFor(fe.Field(), fe.Tag()))
		}
		return nil, fields
	}

	deposit, err := money.ParseCents(s.AmountDeposit)
	if err != nil {
		return nil, dto.FieldErrors{"amount_deposit": {msgAmount}}
	}
	total, err := money.ParseCents(s.AmountTotal)
	if err != nil {
		return nil, dto.FieldErrors{"amount_total": {msgAmount}}
	}
	from, err := calendar.Normalize(s.DateFrom)
	if err != nil {
		return nil, dto.FieldErrors{"date_from": {msgDate}}
	}
	to, err := calendar.Normalize(s.DateTo)
	if err != nil {
		return nil, dto.FieldErrors{"date_to": {msgDate}}
	}

	return &ValidatedCustomer{
		Name:          s.Name,
		Email:         s.Email,
		PhoneNumber:   s.PhoneNumber,
		AmountDeposit: deposit,
		AmountTotal:   total,
		Rooms:         s.Rooms,
		Status:        entity.CustomerStatus(s.Status),
		DateFrom:      from,
		DateTo:        to,
	}, nil
}

func messageFor(field, tag string) string {
	switch field {
	case "name":
		return msgName
	case "status":
		return msgStatus
	case "amount_deposit", "amount_total":
		if tag == "nonnegative" {
			return msgAmountNonNeg
		}
		return msgAmount
	case "date_from", "date_to":
		return msgDate
	}
	return "Invalid value."
}
