package entity

// CustomerStatus estado de pago de la reserva del cliente.
type CustomerStatus string

const (
	CustomerStatusDeposit CustomerStatus = "deposit"
	CustomerStatusPending CustomerStatus = "pending"
	CustomerStatusPaid    CustomerStatus = "paid"
)

// CustomerStatuses lista los estados válidos en el orden en que se muestran en el formulario.
var CustomerStatuses = []CustomerStatus{CustomerStatusDeposit, CustomerStatusPending, CustomerStatusPaid}

// Valid indica si s pertenece a la enumeración.
func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerStatusDeposit, CustomerStatusPending, CustomerStatusPaid:
		return true
	}
	return false
}

// Customer representa una reserva de cliente del dashboard.
// Los importes están en centavos y las fechas en formato YYYY-MM-DD.
type Customer struct {
	ID            string
	Name          string
	Email         string
	PhoneNumber   string
	AmountDeposit int64
	AmountTotal   int64
	Rooms         string
	Status        CustomerStatus
	DateFrom      string
	DateTo        string
	ImageURL      string
	DateCreated   string
}

// CustomerSummary fila del listado: el cliente más los agregados de sus facturas.
type CustomerSummary struct {
	Customer
	TotalInvoices int
	TotalPending  int64
	TotalPaid     int64
}
