package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wastage-backend/internal/apperr"
	"wastage-backend/internal/audit"
	"wastage-backend/internal/auth"
	"wastage-backend/internal/models"
	"wastage-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// RecordSource: kullanıcının görebildiği kayıtlar (wastage.Service sağlar)
type RecordSource interface {
	Records(ctx context.Context, id auth.Identity) ([]models.WastageEntry, error)
	Degraded() bool
}

type Deps struct {
	Records  RecordSource
	Profiles store.ProfileStore
	Audit    *audit.Recorder
	Clock    func() time.Time
	Location *time.Location
}

func (d Deps) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

func (d Deps) loc() *time.Location {
	if d.Location == nil {
		return time.Local
	}
	return d.Location
}

func (d Deps) load(c *fiber.Ctx) (auth.Identity, []models.WastageEntry, error) {
	id, err := auth.IdentityFrom(c)
	if err != nil {
		return id, nil, err
	}
	records, err := d.Records.Records(c.UserContext(), id)
	if err != nil {
		return id, nil, apperr.FromStore(err, "Wastage records could not be loaded")
	}
	apperr.MarkDegraded(c, d.Records.Degraded())
	return id, records, nil
}

// goal: profil yoksa veya depo kapalıysa hedef yok sayılır
func (d Deps) goal(ctx context.Context, userID string) *float64 {
	if d.Profiles == nil {
		return nil
	}
	u, err := d.Profiles.GetUserProfile(ctx, userID)
	if err != nil {
		return nil
	}
	return u.WeeklyWasteGoal
}

func modeFromCtx(c *fiber.Ctx) (Mode, ValueFunc, error) {
	mode, valueOf, err := ParseMode(c.Query("mode"))
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return mode, valueOf, nil
}

// GET /api/dashboard/summary?mode=cost|mass
func SummaryHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode, valueOf, err := modeFromCtx(c)
		if err != nil {
			return err
		}
		id, records, err := d.load(c)
		if err != nil {
			return err
		}

		goal := d.goal(c.UserContext(), id.UserID)
		return c.JSON(BuildSummary(records, d.now(), d.loc(), goal, mode, valueOf))
	}
}

// GET /api/dashboard/trend?mode=cost|mass
func TrendHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode, valueOf, err := modeFromCtx(c)
		if err != nil {
			return err
		}
		_, records, err := d.load(c)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"mode":   mode,
			"points": DailyTotals(records, valueOf, d.loc()),
		})
	}
}

// GET /api/dashboard/reasons?mode=cost|mass
func ReasonsHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode, valueOf, err := modeFromCtx(c)
		if err != nil {
			return err
		}
		_, records, err := d.load(c)
		if err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"mode":    mode,
			"reasons": TotalsByReason(records, valueOf),
		})
	}
}

// GET /api/dashboard/goal
func GoalHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, records, err := d.load(c)
		if err != nil {
			return err
		}

		goal := d.goal(c.UserContext(), id.UserID)
		resp := fiber.Map{"goal": goal, "progress": nil}
		if goal != nil && *goal > 0 {
			resp["progress"] = Progress(Weekly(records, d.now()), *goal)
		}
		return c.JSON(resp)
	}
}

type UpdateGoalRequest struct {
	Goal float64 `json:"goal"`
}

// PUT /api/dashboard/goal
func UpdateGoalHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		var body UpdateGoalRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Goal <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Please set a goal greater than $0.")
		}

		before := d.goal(c.UserContext(), id.UserID)
		if err := d.Profiles.SetUserGoal(c.UserContext(), id.UserID, body.Goal); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User profile not found")
			}
			return apperr.FromStore(err, "Failed to update goal")
		}

		d.Audit.Write(c.UserContext(), audit.LogOptions{
			UserID:      id.UserID,
			Email:       id.Email,
			EntityType:  audit.EntityUserGoal,
			EntityID:    id.UserID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Weekly waste goal set to $%.2f", body.Goal),
			Before:      fiber.Map{"weekly_waste_goal": before},
			After:       fiber.Map{"weekly_waste_goal": body.Goal},
		})

		return c.JSON(fiber.Map{"goal": body.Goal})
	}
}

// GET /api/report?summary=...
func ReportHandler(d Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(NewReportView(c.Query("summary"), d.now(), d.loc()))
	}
}
