package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/booking-dashboard/internal/application/customers"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/booking-dashboard/internal/infrastructure/pdf"
	"github.com/jhoicas/booking-dashboard/internal/infrastructure/persistence"
	httpRouter "github.com/jhoicas/booking-dashboard/internal/interfaces/http"
	"github.com/jhoicas/booking-dashboard/internal/interfaces/http/views"
	"github.com/jhoicas/booking-dashboard/pkg/config"
	"github.com/jhoicas/booking-dashboard/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := persistence.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("base de datos")
	}
	defer repos.Close()

	// Caché de vistas: Redis si está configurado, si no memoria del proceso.
	var store cache.Store = cache.NewMemoryStore()
	if cfg.Cache.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(ctx, cfg.Cache.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisStore.Close()
		store = redisStore
	}
	viewCache := cache.NewViewCache(store, cfg.Cache.TTL, log)

	customerUC := customers.NewCustomerUseCase(repos.Customers, viewCache, log, customers.Options{
		PlaceholderImage: cfg.Dashboard.PlaceholderImage,
		PageSize:         cfg.Dashboard.PageSize,
	})
	pdfUC := customers.NewPDFUseCase(repos.Customers, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Booking Dashboard API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(customers.ListPath, fiber.StatusFound)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		PDFUC:      pdfUC,
		Views:      views.New(),
		ViewCache:  viewCache,
		Logger:     log,
		JWTSecret:  cfg.JWT.Secret,
		CSRF:       cfg.HTTP.CSRF,
	})

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: dashboard y API sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
