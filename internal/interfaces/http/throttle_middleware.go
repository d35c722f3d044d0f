package http

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
)

// Throttle limita las peticiones de una ruta con un token bucket compartido.
// Un limiter nil no limita.
func Throttle(limiter *rate.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil || limiter.Allow() {
			return c.Next()
		}
		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code:    "RATE_LIMITED",
			Message: "demasiadas solicitudes de render, intente en un momento",
		})
	}
}

// NewRenderLimiter perSecond <= 0 desactiva el límite.
func NewRenderLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
