package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/zone-laptop/zone-store/pkg/logger"
)

// RequestLogger asigna un request id (respeta X-Request-ID si llega), deja en el contexto un
// logger con los datos de la petición y registra estado y latencia al terminar.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)

		ctx := l.ForRequest(c.UserContext(), logger.Request{
			ID: id, Method: c.Method(), Path: c.Path(), IP: c.IP(),
		})
		c.SetUserContext(ctx)

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ev := logger.Ctx(ctx).Info()
		if status >= fiber.StatusInternalServerError {
			ev = logger.Ctx(ctx).Error()
		}
		ev.Int("status", status).Dur("latency", time.Since(start)).Msg("petición atendida")
		return err
	}
}
