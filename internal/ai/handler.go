package ai

import (
	"context"
	"time"

	"wastage-backend/internal/apperr"
	"wastage-backend/internal/auth"
	"wastage-backend/internal/dashboard"
	"wastage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RecordSource interface {
	Records(ctx context.Context, id auth.Identity) ([]models.WastageEntry, error)
}

type RecipesRequest struct {
	Ingredients string `json:"ingredients"`
}

func weeklyRecords(c *fiber.Ctx, src RecordSource, clock func() time.Time) ([]models.WastageEntry, error) {
	id, err := auth.IdentityFrom(c)
	if err != nil {
		return nil, err
	}
	records, err := src.Records(c.UserContext(), id)
	if err != nil {
		return nil, apperr.FromStore(err, "Wastage records could not be loaded")
	}
	if clock == nil {
		clock = time.Now
	}
	return dashboard.Weekly(records, clock()), nil
}

// POST /api/ai/weekly-summary — son 7 günün kayıtları
func WeeklySummaryHandler(flows *Flows, src RecordSource, clock func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := weeklyRecords(c, src, clock)
		if err != nil {
			return err
		}
		out := flows.WeeklySummary(c.UserContext(), records)
		return c.Status(out.HTTPStatus()).JSON(out)
	}
}

// POST /api/ai/insights
func InsightsHandler(flows *Flows, src RecordSource, clock func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := weeklyRecords(c, src, clock)
		if err != nil {
			return err
		}
		out := flows.SmartInsights(c.UserContext(), records)
		return c.Status(out.HTTPStatus()).JSON(out)
	}
}

// POST /api/ai/recipes {"ingredients": "rice, carrots"}
func RecipesHandler(flows *Flows) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecipesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		out := flows.Recipes(c.UserContext(), body.Ingredients)
		return c.Status(out.HTTPStatus()).JSON(out)
	}
}
