package dto

// Mensajes de las acciones de clientes (se muestran tal cual en el formulario).
const (
	MsgMissingFieldsCreate = "Missing Fields. Failed to Create Customer."
	MsgMissingFieldsUpdate = "Missing Fields. Failed to Update Customer."
	MsgCreateFailed        = "Database Error: Failed to Create Customer."
	MsgUpdateFailed        = "Database Error: Failed to Update Customer."
	MsgDeleteFailed        = "Database Error: Failed to Delete Customer."
	MsgUpdated             = "Updated Customer."
	MsgDeleted             = "Deleted Customer."
)

// CustomerForm campos enviados por el formulario (x-www-form-urlencoded, multipart o JSON).
// Todos los valores llegan como texto; la validación los convierte a tipos.
type CustomerForm struct {
	Name          string `json:"name" form:"name"`
	Email         string `json:"email" form:"email"`
	PhoneNumber   string `json:"phone_number" form:"phone_number"`
	AmountDeposit string `json:"amount_deposit" form:"amount_deposit"`
	AmountTotal   string `json:"amount_total" form:"amount_total"`
	Rooms         string `json:"rooms" form:"rooms"`
	Status        string `json:"status" form:"status"`
	DateFrom      string `json:"date_from" form:"date_from"`
	DateTo        string `json:"date_to" form:"date_to"`
}

// FieldErrors mensajes de validación por nombre de campo del formulario.
type FieldErrors map[string][]string

// Add agrega un mensaje al campo.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// FormState estado devuelto al formulario tras una acción fallida.
type FormState struct {
	Message string      `json:"message,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

// ValidationErrorResponse error de validación en la API JSON.
type ValidationErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors"`
}

// CustomerResponse cliente en respuestas JSON. Los importes se exponen en decimal y en centavos.
type CustomerResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	PhoneNumber        string `json:"phone_number"`
	AmountDeposit      string `json:"amount_deposit"`
	AmountDepositCents int64  `json:"amount_deposit_cents"`
	AmountTotal        string `json:"amount_total"`
	AmountTotalCents   int64  `json:"amount_total_cents"`
	Rooms              string `json:"rooms"`
	Status             string `json:"status"`
	DateFrom           string `json:"date_from"`
	DateTo             string `json:"date_to"`
	ImageURL           string `json:"image_url"`
	DateCreated        string `json:"date_created,omitempty"`
}

// CustomerRowResponse fila del listado con los agregados de facturas.
type CustomerRowResponse struct {
	CustomerResponse
	TotalInvoices int    `json:"total_invoices"`
	TotalPending  string `json:"total_pending"`
	TotalPaid     string `json:"total_paid"`
}

// CustomerListResponse respuesta de GET /api/customers.
type CustomerListResponse struct {
	Items []CustomerRowResponse `json:"items"`
	PageResponse
}
