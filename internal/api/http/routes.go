package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weatherdeck/internal/history"
	"weatherdeck/internal/session"
	"weatherdeck/internal/settings"
	"weatherdeck/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. The surface is a
// thin projection of the session: it exposes the core's outputs (candidate
// lists, snapshots, formatted values) and accepts the core's inputs (queries,
// selections, settings changes).
func RegisterRoutes(app *fiber.App, sess *session.Session, st *settings.Store, hist *history.Store) {
	v1 := app.Group("/api/v1")

	v1.Get("/search", func(c *fiber.Ctx) error {
		var q searchQuery
		q.Name = c.Query("name")
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "name query parameter is required")
		}

		results := sess.Search(c.Context(), q.Name)
		return c.JSON(fiber.Map{
			"query":   q.Name,
			"results": toCandidates(results),
		})
	})

	v1.Post("/select", func(c *fiber.Ctx) error {
		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := sess.Select(*req.Index); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.JSON(sess.Snapshot())
	})

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(sess.Snapshot())
	})

	v1.Get("/recent", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"entries": hist.Entries()})
	})

	v1.Get("/settings", func(c *fiber.Ctx) error {
		return c.JSON(st.Values())
	})

	v1.Put("/settings", func(c *fiber.Ctx) error {
		var req settingRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := sess.UpdateSetting(req.Key, req.Value); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(st.Values())
	})
}

type searchQuery struct {
	Name string `validate:"required"`
}

// selectRequest picks a candidate from the current result list. Index is a
// pointer so that a missing field fails validation instead of selecting 0.
type selectRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

type settingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// candidate decorates a Location with the display label the result list uses.
type candidate struct {
	weather.Location
	Label string `json:"label"`
}

func toCandidates(locs []weather.Location) []candidate {
	out := make([]candidate, 0, len(locs))
	for _, loc := range locs {
		out = append(out, candidate{Location: loc, Label: loc.Label()})
	}
	return out
}
