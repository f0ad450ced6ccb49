package httpapi

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/weatherapp/internal/obs"
	"github.com/i474232898/weatherapp/internal/session"
	"github.com/i474232898/weatherapp/internal/weather"
)

const serviceName = "weatherapp"

// RequestIDHeader echoes the id used in operation timing logs.
const RequestIDHeader = "X-Request-ID"

// NewApp builds the Fiber app with middleware, health check and API routes.
func NewApp(service *weather.Service, sess *session.Session) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
		})
	})

	RegisterRoutes(app, service, sess)
	return app
}

// RequestID attaches a request id to the handler's user context so provider
// timings can be correlated with access logs. An incoming header is reused.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if id := c.Get(RequestIDHeader); id != "" {
			ctx = context.WithValue(ctx, obs.RequestIDKey, id)
		}
		ctx = obs.WithRequestID(ctx)

		id := obs.RequestID(ctx)
		c.SetUserContext(ctx)
		c.Locals("requestid", id)
		c.Set(RequestIDHeader, id)
		return c.Next()
	}
}

// ErrorHandler renders every error as {"error": true, "message": ...} and
// maps weather errors to status codes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	if code >= fiber.StatusInternalServerError {
		log.Printf("ERROR: req_id=%s %s %s: %v", obs.RequestID(c.UserContext()), c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// StatusFor picks the HTTP status for err.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case weather.IsTimeout(err):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, weather.ErrNotFound):
		return fiber.StatusNotFound
	case weather.IsFetchError(err):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
