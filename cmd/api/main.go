package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/combustible-api/internal/application/auth"
	appclient "github.com/jhoicas/combustible-api/internal/application/client"
	"github.com/jhoicas/combustible-api/internal/application/dispatch"
	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/application/stats"
	"github.com/jhoicas/combustible-api/internal/application/system"
	infrapdf "github.com/jhoicas/combustible-api/internal/infrastructure/pdf"
	"github.com/jhoicas/combustible-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/combustible-api/internal/interfaces/http"
	"github.com/jhoicas/combustible-api/pkg/config"
	"github.com/jhoicas/combustible-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicialización del esquema")
	}

	// Repos atados al pool: solo lecturas fuera de transacción. Las
	// mutaciones pasan por el TxRunner, que construye repos atados a la tx.
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	subclientRepo := postgres.NewSubclientRepository(pool)
	resRepo := postgres.NewReservationRepository(pool)
	wdRepo := postgres.NewWithdrawalRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	cfgRepo := postgres.NewConfigRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resetUC := quota.NewResetUseCase(txRunner, log, quota.Config{
		CutoffHour:     cfg.Reset.CutoffHour,
		UTCOffsetHours: cfg.Reset.UTCOffsetHours,
	})
	authUC := auth.NewUseCase(userRepo, clientRepo, resetUC, log, auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})
	clientUC := appclient.NewUseCase(txRunner, clientRepo, subclientRepo, log, cfg.Reset.UTCOffsetHours)
	dispatchUC := dispatch.NewUseCase(txRunner, resRepo, wdRepo, clientRepo, log, cfg.Reset.UTCOffsetHours)
	invUC := inventory.NewUseCase(txRunner, invRepo)
	systemUC := system.NewUseCase(cfgRepo, resRepo, log, cfg.Reset.UTCOffsetHours)
	statsUC := stats.NewUseCase(statsRepo, cfg.Reset.UTCOffsetHours)

	// PDF: comprobante imprimible del agendamiento con código QR
	ticketGen := infrapdf.NewMarotoTicketGenerator(cfg.App.Estacion)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Combustible API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ClientUC:   clientUC,
		DispatchUC: dispatchUC,
		InvUC:      invUC,
		SystemUC:   systemUC,
		StatsUC:    statsUC,
		ResetUC:    resetUC,
		TicketGen:  ticketGen,
		JWTSecret:  cfg.JWT.Secret,
	})

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
