package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         authService
	ProductUC      productService
	SubmitOrderUC  orderSubmitter
	OrderUC        orderReader
	LifecycleUC    statusChanger
	ReceiptUC      receiptProvider
	JWTSecret      string
	PollInterval   time.Duration
	CheckoutPerMin int            // 0 desactiva el límite
	Logger         *logger.Logger // nil = sin log por petición
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Logger != nil {
		app.Use(RequestLogger(deps.Logger))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret)
	backOffice := RequireRole(entity.RoleCajero, entity.RoleAdmin)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Catálogo: lectura pública, escritura solo admin
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", requireAuth, adminOnly, productHandler.Create)
	products.Put("/:id", requireAuth, adminOnly, productHandler.Update)
	products.Delete("/:id", requireAuth, adminOnly, productHandler.Delete)

	// Pedidos: checkout y comprobante públicos, el resto para caja
	orderHandler := NewOrderHandler(deps.SubmitOrderUC, deps.OrderUC, deps.LifecycleUC, deps.ReceiptUC, deps.PollInterval)
	orders := api.Group("/orders")
	orders.Post("/", checkoutLimiter(deps.CheckoutPerMin), orderHandler.Submit)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Get("/", requireAuth, backOffice, orderHandler.List)
	orders.Get("/:id", requireAuth, backOffice, orderHandler.GetByID)
	orders.Patch("/:id/status", requireAuth, backOffice, orderHandler.TransitionStatus)
}

// checkoutLimiter limita confirmaciones de compra por IP y minuto.
func checkoutLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiados intentos, espere un minuto",
			})
		},
	})
}
