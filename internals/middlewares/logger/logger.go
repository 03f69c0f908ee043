package logger

import (
	"certihub_backend/internals/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LoggerMiddleware is fiber's access log. Off unless HTTP_ACCESS_LOG is set;
// the request-id middleware already logs one line per request.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		Next:       func(*fiber.Ctx) bool { return !configs.GetEnvBool("HTTP_ACCESS_LOG", false) },
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   configs.GetEnv("TZ", "UTC"),
		Format:     "[${time}] ${ip} - ${method} ${path} - ${status} - ${latency}\n",
	})
}
