package httpapi

import (
	"bytes"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/i474232898/weather-display/internal/display"
	"github.com/i474232898/weather-display/internal/preview"
	"github.com/i474232898/weather-display/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *display.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/display.png", func(c *fiber.Ctx) error {
		frame, err := service.Latest(c.UserContext())
		if err != nil {
			return frameError(err, "no frame rendered yet")
		}
		return sendPNG(c, frame)
	})

	v1.Get("/frames/:id/display.png", func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid frame id")
		}
		frame, err := service.Get(c.UserContext(), id)
		if err != nil {
			return frameError(err, "no frame with the requested id")
		}
		return sendPNG(c, frame)
	})

	v1.Get("/conditions", func(c *fiber.Ctx) error {
		frame, err := service.Latest(c.UserContext())
		if err != nil {
			return frameError(err, "no frame rendered yet")
		}
		return c.JSON(frame)
	})

	v1.Get("/frames", func(c *fiber.Ctx) error {
		var req rangeQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		frames, err := service.Range(c.UserContext(), req.From, req.To)
		if err != nil {
			return frameError(err, "no frames in requested range")
		}

		return c.JSON(fiber.Map{
			"from":   req.From,
			"to":     req.To,
			"frames": frames,
		})
	})

	v1.Get("/charts", func(c *fiber.Ctx) error {
		frame, err := service.Latest(c.UserContext())
		if err != nil {
			return frameError(err, "no frame rendered yet")
		}
		var buf bytes.Buffer
		if err := preview.Render(&buf, frame.Records, frame.Location.Name()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart preview")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1.Post("/render", func(c *fiber.Ctx) error {
		frame, err := service.RenderPass(c.UserContext())
		if err != nil {
			if errors.Is(err, display.ErrAsleep) {
				return fiber.NewError(fiber.StatusConflict, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(frame)
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

func frameError(err error, notFound string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, notFound)
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch frame")
}

func sendPNG(c *fiber.Ctx, frame display.Frame) error {
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set("X-Frame-Id", frame.ID.String())
	return c.Send(frame.PNG)
}

// rangeQuery holds query parameters for the frames endpoint.
type rangeQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (r *rangeQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	r.From = from
	r.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
