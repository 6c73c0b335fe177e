// seed aplica las migraciones y carga clientes y facturas de demostración.
//
// Uso: go run ./cmd/seed [-token usuario]
// Con -token imprime además un token de sesión para el dashboard (requiere JWT_SECRET).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/persistence"
	"github.com/jhoicas/booking-dashboard/pkg/config"
	"github.com/jhoicas/booking-dashboard/pkg/jwt"
	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

type demoInvoice struct {
	amount int64
	status entity.InvoiceStatus
	date   string
}

type demoCustomer struct {
	customer entity.Customer
	invoices []demoInvoice
}

var demo = []demoCustomer{
	{
		customer: entity.Customer{
			Name: "Delba de Oliveira", Email: "delba@oliveira.com", PhoneNumber: "+1 555 0101",
			AmountDeposit: 15000, AmountTotal: 60000, Rooms: "12", Status: entity.CustomerStatusDeposit,
			DateFrom: "2024-03-01", DateTo: "2024-03-05", ImageURL: "/customers/delba-de-oliveira.png",
		},
		invoices: []demoInvoice{
			{15000, entity.InvoiceStatusPaid, "2024-02-10"},
			{45000, entity.InvoiceStatusPending, "2024-03-05"},
		},
	},
	{
		customer: entity.Customer{
			Name: "Lee Robinson", Email: "lee@robinson.com", PhoneNumber: "+1 555 0102",
			AmountDeposit: 0, AmountTotal: 32000, Rooms: "7, 8", Status: entity.CustomerStatusPending,
			DateFrom: "2024-04-12", DateTo: "2024-04-14", ImageURL: "/customers/lee-robinson.png",
		},
		invoices: []demoInvoice{
			{32000, entity.InvoiceStatusPending, "2024-04-14"},
		},
	},
	{
		customer: entity.Customer{
			Name: "Hector Simpson", Email: "hector@simpson.com", PhoneNumber: "+1 555 0103",
			AmountDeposit: 88050, AmountTotal: 88050, Rooms: "21", Status: entity.CustomerStatusPaid,
			DateFrom: "2024-01-20", DateTo: "2024-01-27", ImageURL: "/customers/hector-simpson.png",
		},
		invoices: []demoInvoice{
			{20000, entity.InvoiceStatusPaid, "2024-01-02"},
			{68050, entity.InvoiceStatusPaid, "2024-01-27"},
		},
	},
	{
		customer: entity.Customer{
			Name: "Steph Dietz", Email: "steph@dietz.com",
			AmountDeposit: 5000, AmountTotal: 21000, Rooms: "3", Status: entity.CustomerStatusDeposit,
			DateFrom: "2024-05-02", DateTo: "2024-05-03", ImageURL: "/customers/steph-dietz.png",
		},
	},
	{
		customer: entity.Customer{
			Name: "Amy Burns", Email: "amy@burns.com", PhoneNumber: "+1 555 0105",
			AmountDeposit: 0, AmountTotal: 54000, Rooms: "15, 16, 17", Status: entity.CustomerStatusPending,
			DateFrom: "2024-06-10", DateTo: "2024-06-12", ImageURL: "/customers/amy-burns.png",
		},
		invoices: []demoInvoice{
			{54000, entity.InvoiceStatusPending, "2024-06-12"},
		},
	},
}

func main() {
	tokenUser := flag.String("token", "", "imprime un token de sesión para este usuario")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	repos, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("base de datos")
	}
	defer repos.Close()

	if err := seed(ctx, repos); err != nil {
		log.Fatal().Err(err).Msg("cargar datos demo")
	}
	log.Info().Int("customers", len(demo)).Msg("datos demo cargados")

	if *tokenUser != "" {
		if cfg.JWT.Secret == "" {
			log.Fatal().Msg("JWT_SECRET vacío: no se puede firmar el token")
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, *tokenUser, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token")
		}
		fmt.Println(tok)
	}
}

func seed(ctx context.Context, repos *persistence.Repositories) error {
	for _, d := range demo {
		c := d.customer
		c.ID = uuid.NewString()
		c.DateCreated = c.DateFrom
		if err := repos.Customers.Create(ctx, &c); err != nil {
			return fmt.Errorf("cliente %s: %w", c.Name, err)
		}
		for _, inv := range d.invoices {
			if err := repos.Invoices.Create(ctx, &entity.Invoice{
				ID:         uuid.NewString(),
				CustomerID: c.ID,
				Amount:     inv.amount,
				Status:     inv.status,
				Date:       inv.date,
			}); err != nil {
				return fmt.Errorf("factura de %s: %w", c.Name, err)
			}
		}
	}
	return nil
}
