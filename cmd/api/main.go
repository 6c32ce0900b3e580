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
	"github.com/zone-laptop/zone-store/internal/application/auth"
	"github.com/zone-laptop/zone-store/internal/application/catalog"
	"github.com/zone-laptop/zone-store/internal/application/checkout"
	"github.com/zone-laptop/zone-store/internal/application/orders"
	infrapdf "github.com/zone-laptop/zone-store/internal/infrastructure/pdf"
	"github.com/zone-laptop/zone-store/internal/infrastructure/postgres"
	httpRouter "github.com/zone-laptop/zone-store/internal/interfaces/http"
	"github.com/zone-laptop/zone-store/pkg/config"
	"github.com/zone-laptop/zone-store/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	if cfg.Orders.CancelSecretHash == "" {
		log.Warn().Msg("ORDERS_CANCEL_SECRET_HASH vacío: toda cancelación de pedidos será rechazada")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("esquema verificado")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	opTimeout := cfg.DB.OpTimeout

	submitOrderUC := checkout.NewSubmitOrderUseCase(txRunner, opTimeout)
	orderUC := orders.NewOrderUseCase(orderRepo, opTimeout)
	lifecycleUC := orders.NewLifecycleUseCase(txRunner, cfg.Orders.CancelSecretHash, opTimeout)
	receiptUC := orders.NewReceiptUseCase(orderRepo, infrapdf.NewReceiptGenerator(), orders.StoreInfo{
		Name:    cfg.Store.Name,
		Address: cfg.Store.Address,
		Phone:   cfg.Store.Phone,
	}, opTimeout)
	productUC := catalog.NewProductUseCase(productRepo, opTimeout)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // comprobantes de pago en data URI
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Z-ONE Store API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		SubmitOrderUC:  submitOrderUC,
		OrderUC:        orderUC,
		LifecycleUC:    lifecycleUC,
		ReceiptUC:      receiptUC,
		JWTSecret:      cfg.JWT.Secret,
		PollInterval:   cfg.Orders.PollInterval,
		CheckoutPerMin: cfg.Orders.CheckoutRatePerMinute,
		Logger:         log,
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
