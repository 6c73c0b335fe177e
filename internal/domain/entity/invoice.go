package entity

// InvoiceStatus estado de una factura asociada a un cliente.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice factura de un cliente. Solo se usa para los agregados del listado y la carga de datos demo.
type Invoice struct {
	ID         string
	CustomerID string
	Amount     int64 // centavos
	Status     InvoiceStatus
	Date       string // YYYY-MM-DD
}
