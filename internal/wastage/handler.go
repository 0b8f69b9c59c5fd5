package wastage

import (
	"errors"

	"wastage-backend/internal/apperr"
	"wastage-backend/internal/auth"
	"wastage-backend/internal/dashboard"
	"wastage-backend/internal/models"
	"wastage-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type WastageResponse struct {
	ID       string               `json:"id"`
	Item     string               `json:"item"`
	Quantity float64              `json:"quantity"`
	Unit     models.WastageUnit   `json:"unit"`
	Reason   models.WastageReason `json:"reason"`
	Date     string               `json:"date"` // RFC3339
	UserID   string               `json:"user_id"`
	Cost     *float64             `json:"cost"`
}

type DonationResponse struct {
	WastageResponse
	Donor models.DonorInfo `json:"donor"`
}

func toResponse(e models.WastageEntry) WastageResponse {
	return WastageResponse{
		ID:       e.ID,
		Item:     e.Item,
		Quantity: e.Quantity,
		Unit:     e.Unit,
		Reason:   e.Reason,
		Date:     e.Date.Format("2006-01-02T15:04:05Z07:00"),
		UserID:   e.UserID,
		Cost:     e.Cost,
	}
}

func toResponses(entries []models.WastageEntry) []WastageResponse {
	resp := make([]WastageResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, toResponse(e))
	}
	return resp
}

func logFailure(log *logrus.Logger, id auth.Identity, recordID string, err error, msg string) {
	if log == nil || errors.Is(err, store.ErrNotFound) {
		return
	}
	log.WithFields(logrus.Fields{
		"user_id":   id.UserID,
		"record_id": recordID,
	}).WithError(err).Error(msg)
}

// TableQueryFromCtx: ?item=&reason=&sort=&dir=
func TableQueryFromCtx(c *fiber.Ctx) (dashboard.TableQuery, error) {
	q, err := dashboard.NewTableQuery(c.Query("item"), c.Query("reason"), c.Query("sort"), c.Query("dir"))
	if err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return q, nil
}

// GET /api/wastage?item=&reason=&sort=&dir=
func ListHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}
		q, err := TableQueryFromCtx(c)
		if err != nil {
			return err
		}

		records, err := svc.Records(c.UserContext(), id)
		if err != nil {
			logFailure(svc.Log, id, "", err, "wastage list failed")
			return apperr.FromStore(err, "Wastage records could not be loaded")
		}

		apperr.MarkDegraded(c, svc.Degraded())
		return c.JSON(toResponses(dashboard.SortAndFilter(records, q)))
	}
}

// POST /api/wastage
func CreateHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		var body CreateWastageRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		entry, err := svc.Create(c.UserContext(), id, body)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return fiber.NewError(fiber.StatusBadRequest, verr.Message)
			}
			logFailure(svc.Log, id, "", err, "wastage create failed")
			return apperr.FromStore(err, "Failed to log wastage. Please try again.")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(*entry))
	}
}

// GET /api/wastage/:id
func GetHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		entry, err := svc.Get(c.UserContext(), id, c.Params("id"))
		if err != nil {
			return apperr.FromStore(err, "Wastage record could not be loaded")
		}
		return c.JSON(toResponse(*entry))
	}
}

// DELETE /api/wastage/:id — başka kullanıcının kaydı 404 döner
func DeleteHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		recordID := c.Params("id")
		if err := svc.Delete(c.UserContext(), id, recordID); err != nil {
			logFailure(svc.Log, id, recordID, err, "wastage delete failed")
			return apperr.FromStore(err, "Failed to delete entry. Please try again.")
		}

		return c.JSON(fiber.Map{"id": recordID})
	}
}

// GET /api/donations
func DonationsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		donations, err := svc.Donations(c.UserContext())
		if err != nil {
			return apperr.FromStore(err, "Donations could not be loaded")
		}

		resp := make([]DonationResponse, 0, len(donations))
		for _, d := range donations {
			resp = append(resp, DonationResponse{WastageResponse: toResponse(d.WastageEntry), Donor: d.Donor})
		}

		apperr.MarkDegraded(c, svc.Degraded())
		return c.JSON(resp)
	}
}
