package httpapi

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weatherapp/internal/session"
	"github.com/i474232898/weatherapp/internal/weather"
)

var validate = validator.New()

// MaxHourlyLimit caps the limit query parameter of the hourly endpoint.
const MaxHourlyLimit = 96

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, sess *session.Session) {
	v1 := app.Group("/api/v1")

	v1.Get("/locations/resolve", func(c *fiber.Ctx) error {
		var q resolveQuery
		q.Query = strings.TrimSpace(c.Query("q"))
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "query parameter q is required")
		}

		loc, err := service.Resolve(c.UserContext(), q.Query)
		if err != nil {
			return err
		}
		return c.JSON(loc)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		name, err := locationParam(c, sess)
		if err != nil {
			return err
		}

		report, err := service.Report(c.UserContext(), name)
		if err != nil {
			return err
		}
		return c.JSON(report)
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		name, err := locationParam(c, sess)
		if err != nil {
			return err
		}

		record, err := service.Current(c.UserContext(), name)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"location":      record.Location,
			"current":       record,
			"windDirection": record.WindDirection(),
			"windIcon":      record.WindDirection().IconKey(),
		})
	})

	v1.Get("/weather/daily", func(c *fiber.Ctx) error {
		name, err := locationParam(c, sess)
		if err != nil {
			return err
		}

		loc, entries, err := service.Daily(c.UserContext(), name)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"location": loc,
			"daily":    entries,
		})
	})

	v1.Get("/weather/hourly", func(c *fiber.Ctx) error {
		var q hourlyQuery
		if err := q.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be between 0 and "+strconv.Itoa(MaxHourlyLimit))
		}

		name, err := locationParam(c, sess)
		if err != nil {
			return err
		}

		loc, entries, err := service.Hourly(c.UserContext(), name)
		if err != nil {
			return err
		}
		if q.Limit > 0 && q.Limit < len(entries) {
			entries = entries[:q.Limit]
		}
		return c.JSON(fiber.Map{
			"location": loc,
			"hourly":   entries,
		})
	})

	registerFavoriteRoutes(v1, sess)
	registerSessionRoutes(v1, sess)
}

func registerFavoriteRoutes(v1 fiber.Router, sess *session.Session) {
	v1.Get("/favorites", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"favorites": sess.Favorites()})
	})

	v1.Post("/favorites", func(c *fiber.Ctx) error {
		var req nameRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "name is required")
		}

		added := sess.AddFavorite(req.Name)
		status := fiber.StatusOK
		if added {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(fiber.Map{
			"name":      req.Name,
			"added":     added,
			"favorites": sess.Favorites(),
		})
	})

	v1.Delete("/favorites", func(c *fiber.Ctx) error {
		sess.ClearFavorites()
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Delete("/favorites/:name", func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid favorite name")
		}

		removed := sess.RemoveFavorite(name)
		return c.JSON(fiber.Map{
			"name":      name,
			"removed":   removed,
			"favorites": sess.Favorites(),
		})
	})
}

func registerSessionRoutes(v1 fiber.Router, sess *session.Session) {
	v1.Get("/session/location", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"location": sess.Location()})
	})

	// Rejected names are not an error: the session falls back and the
	// response says so.
	v1.Put("/session/location", func(c *fiber.Ctx) error {
		var req nameRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		accepted := sess.SetLocation(c.UserContext(), req.Name)
		return c.JSON(fiber.Map{
			"requested": req.Name,
			"accepted":  accepted,
			"location":  sess.Location(),
			"fallback":  sess.Fallback(),
		})
	})
}

type resolveQuery struct {
	Query string `validate:"required"`
}

type nameRequest struct {
	Name string `json:"name" validate:"required"`
}

// hourlyQuery holds query parameters for the hourly endpoint.
type hourlyQuery struct {
	Limit int `validate:"min=0,max=96"`
}

func (h *hourlyQuery) bind(c *fiber.Ctx) error {
	raw := c.Query("limit")
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New("limit must be an integer")
	}
	h.Limit = n
	return nil
}

// locationParam returns the location query parameter, or the session's
// current location when it is absent.
func locationParam(c *fiber.Ctx, sess *session.Session) (string, error) {
	if name := strings.TrimSpace(c.Query("location")); name != "" {
		return name, nil
	}
	if name := sess.Location(); name != "" {
		return name, nil
	}
	return "", fiber.NewError(fiber.StatusBadRequest, "query parameter location is required")
}
