package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vkleiv/energy-data-pipeline/internal/dataset"
	"github.com/vkleiv/energy-data-pipeline/internal/source"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Handlers are
// thin: they bind and validate the query, call one pipeline entry point and
// translate the error taxonomy into status codes. Adapter-level failures are
// hard stops; row-level drops travel as diagnostics next to the table.
func RegisterRoutes(app *fiber.App, service *dataset.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/production", func(c *fiber.Ctx) error {
		snap, err := service.Production(c.Context())
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(snap)
	})

	v1.Post("/production/refresh", func(c *fiber.Ctx) error {
		snap, err := service.RefreshProduction(c.Context())
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(fiber.Map{
			"rows":        len(snap.Table.Rows),
			"diagnostics": snap.Diagnostics,
			"fetchedAt":   snap.FetchedAt,
		})
	})

	v1.Get("/production/meta", func(c *fiber.Ctx) error {
		snap, err := service.Production(c.Context())
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(fiber.Map{
			"priceAreas":       snap.Table.PriceAreas(),
			"productionGroups": snap.Table.ProductionGroups(),
			"months":           snap.Table.Months(),
		})
	})

	v1.Get("/production/summary", func(c *fiber.Ctx) error {
		var req summaryQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summary, err := service.ProductionSummary(c.Context(), req.Area)
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(summary)
	})

	v1.Get("/production/series", func(c *fiber.Ctx) error {
		var req seriesQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		series, err := service.ProductionSeries(c.Context(), req.Area, req.Groups, req.Month)
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(fiber.Map{
			"priceArea": req.Area,
			"month":     req.Month,
			"series":    series,
		})
	})

	v1.Get("/production/window", func(c *fiber.Ctx) error {
		var req productionWindowQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		window, err := service.ProductionWindow(c.Context(), req.Area, req.Group, req.MaxPoints)
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(fiber.Map{
			"column": "quantityKwh",
			"points": window,
		})
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		snap, err := service.Weather(c.Context())
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(snap)
	})

	v1.Get("/weather/stats", func(c *fiber.Ctx) error {
		stats, err := service.WeatherStats(c.Context())
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(fiber.Map{"columns": stats})
	})

	v1.Get("/weather/window", func(c *fiber.Ctx) error {
		var req windowQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		window, err := service.WeatherWindow(c.Context(), req.Column, req.MaxPoints)
		if err != nil {
			return sourceError(err)
		}
		return c.JSON(fiber.Map{
			"column": req.Column,
			"points": window,
		})
	})
}

// sourceError maps the adapter error taxonomy onto HTTP statuses.
func sourceError(err error) error {
	switch {
	case errors.Is(err, source.ErrEmptyResult), errors.Is(err, source.ErrFileNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, source.ErrSourceUnavailable):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "pipeline failure")
	}
}

// summaryQuery holds query parameters for the production summary endpoint.
type summaryQuery struct {
	Area string `validate:"required"`
}

func (q *summaryQuery) bind(c *fiber.Ctx) error {
	q.Area = c.Query("area")
	return validate.Struct(q)
}

// seriesQuery holds query parameters for the per-group series endpoint.
type seriesQuery struct {
	Area   string `validate:"required"`
	Groups []string
	Month  int `validate:"gte=0,lte=12"`
}

func (q *seriesQuery) bind(c *fiber.Ctx) error {
	q.Area = c.Query("area")

	if groups := c.Query("groups"); groups != "" {
		for _, g := range strings.Split(groups, ",") {
			if g = strings.TrimSpace(g); g != "" {
				q.Groups = append(q.Groups, g)
			}
		}
	}

	month, err := parseIntQuery(c, "month", 0)
	if err != nil {
		return err
	}
	q.Month = month

	return validate.Struct(q)
}

// windowQuery holds query parameters for the weather window endpoint.
type windowQuery struct {
	Column    string `validate:"required"`
	MaxPoints int    `validate:"gte=1,lte=744"`
}

func (q *windowQuery) bind(c *fiber.Ctx) error {
	q.Column = c.Query("column")

	maxPoints, err := parseIntQuery(c, "max_points", dataset.DefaultMaxPoints)
	if err != nil {
		return err
	}
	q.MaxPoints = maxPoints

	return validate.Struct(q)
}

// productionWindowQuery holds query parameters for the production window
// endpoint. Area and group are optional filters.
type productionWindowQuery struct {
	Area      string
	Group     string
	MaxPoints int `validate:"gte=1,lte=744"`
}

func (q *productionWindowQuery) bind(c *fiber.Ctx) error {
	q.Area = c.Query("area")
	q.Group = c.Query("group")

	maxPoints, err := parseIntQuery(c, "max_points", dataset.DefaultMaxPoints)
	if err != nil {
		return err
	}
	q.MaxPoints = maxPoints

	return validate.Struct(q)
}

func parseIntQuery(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return n, nil
}
