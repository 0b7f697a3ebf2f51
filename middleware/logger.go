package middleware

import (
	"time"

	"frontline-inventory/config"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger writes one structured log line per request once the handler
// chain has finished.
func RequestLogger(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()

	config.Log.Infow("request",
		"method", ctx.Method(),
		"path", ctx.Path(),
		"status", ctx.Response().StatusCode(),
		"latency", time.Since(start).String(),
		"ip", ctx.IP(),
	)
	return err
}
