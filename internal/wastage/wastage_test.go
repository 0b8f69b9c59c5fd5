package wastage

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastage-backend/internal/apperr"
	"wastage-backend/internal/audit"
	"wastage-backend/internal/auth"
	"wastage-backend/internal/models"
	"wastage-backend/internal/store"
)

var fixed = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newService(s store.Store) *Service {
	svc := NewService(s, audit.NewRecorder(audit.NewMemorySink(50), quietLogger()), quietLogger())
	svc.Clock = func() time.Time { return fixed }
	return svc
}

var (
	owner1 = auth.Identity{UserID: "u1", Email: "one@example.com", Role: models.RoleOwner}
	owner2 = auth.Identity{UserID: "u2", Email: "two@example.com", Role: models.RoleOwner}
	admin  = auth.Identity{UserID: "root", Email: "root@example.com", Role: models.RoleSuperAdmin}
)

func cost(v float64) *float64 { return &v }

func TestCreateValidatesAndStampsDate(t *testing.T) {
	svc := newService(store.NewMemoryStore())
	ctx := context.Background()

	entry, err := svc.Create(ctx, owner1, CreateWastageRequest{Item: "  Tomatoes ", Quantity: 2, Unit: "kg", Reason: "Spoilage", Cost: cost(5)})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Tomatoes", entry.Item)
	assert.Equal(t, fixed, entry.Date)
	assert.Equal(t, "u1", entry.UserID)

	bad := []CreateWastageRequest{
		{Item: "T", Quantity: 1, Unit: "kg", Reason: "Spoilage"},
		{Item: "Tomatoes", Quantity: 0, Unit: "kg", Reason: "Spoilage"},
		{Item: "Tomatoes", Quantity: 1, Unit: "lb", Reason: "Spoilage"},
		{Item: "Tomatoes", Quantity: 1, Unit: "kg", Reason: "Dropped"},
		{Item: "Tomatoes", Quantity: 1, Unit: "kg", Reason: "Spoilage", Cost: cost(-1)},
	}
	for _, req := range bad {
		_, err := svc.Create(ctx, owner1, req)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "%+v", req)
	}

	logs, err := svc.Audit.List(ctx, audit.Filter{EntityType: audit.EntityWastageEntry})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestOwnershipRules(t *testing.T) {
	svc := newService(store.NewMemoryStore())
	ctx := context.Background()

	mine, err := svc.Create(ctx, owner1, CreateWastageRequest{Item: "Bread", Quantity: 1, Unit: "units", Reason: "Expired"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner2, CreateWastageRequest{Item: "Fish", Quantity: 1, Unit: "kg", Reason: "Spoilage"})
	require.NoError(t, err)

	list, err := svc.Records(ctx, owner1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	all, err := svc.Records(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Get(ctx, owner2, mine.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner2, mine.ID), store.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, admin, mine.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner1, mine.ID), store.ErrNotFound)
}

func TestDonations(t *testing.T) {
	s := store.NewMemoryStore()
	svc := newService(s)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &models.User{ID: "u1", Email: "one@example.com", Role: models.RoleOwner}))

	older := fixed.Add(-time.Hour)
	_, err := s.CreateRecord(ctx, store.NewRecord{Item: "Soup", Quantity: 3, Unit: models.UnitLitre, Reason: models.ReasonOverproduction, Date: older, UserID: "u1"})
	require.NoError(t, err)
	_, err = s.CreateRecord(ctx, store.NewRecord{Item: "Rice", Quantity: 2, Unit: models.UnitKilogram, Reason: models.ReasonOverproduction, Date: fixed, UserID: "u1"})
	require.NoError(t, err)
	_, err = s.CreateRecord(ctx, store.NewRecord{Item: "Pasta", Quantity: 2, Unit: models.UnitKilogram, Reason: models.ReasonOverproduction, Date: fixed, UserID: "ghost"})
	require.NoError(t, err)
	_, err = s.CreateRecord(ctx, store.NewRecord{Item: "Milk", Quantity: 1, Unit: models.UnitLitre, Reason: models.ReasonSpoilage, Date: fixed, UserID: "u1"})
	require.NoError(t, err)

	donations, err := svc.Donations(ctx)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	assert.Equal(t, "Rice", donations[0].Item)
	assert.Equal(t, "Soup", donations[1].Item)
	assert.Equal(t, "one@example.com", donations[0].Donor.Email)
}

func newApp(svc *Service, id auth.Identity) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperr.ErrorHandler(quietLogger())})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, id.UserID)
		c.Locals(auth.CtxUserRoleKey, id.Role)
		c.Locals(auth.CtxUserEmailKey, id.Email)
		return c.Next()
	})
	app.Get("/wastage", ListHandler(svc))
	app.Post("/wastage", CreateHandler(svc))
	app.Get("/wastage/:id", GetHandler(svc))
	app.Delete("/wastage/:id", DeleteHandler(svc))
	app.Get("/donations", DonationsHandler(svc))
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) (int, string, []byte) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header.Get(apperr.DegradedHeader), raw
}

func TestHandlersCreateListDelete(t *testing.T) {
	svc := newService(store.NewMemoryStore())
	app := newApp(svc, owner1)
	other := newApp(svc, owner2)

	status, _, raw := send(t, app, "POST", "/wastage", `{"item":"Lettuce","quantity":1.5,"unit":"kg","reason":"Spoilage","cost":4}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	var created WastageResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "2025-06-15T12:00:00Z", created.Date)

	status, _, raw = send(t, app, "POST", "/wastage", `{"item":"Eggs","quantity":12,"unit":"units","reason":"Expired"}`)
	require.Equal(t, fiber.StatusCreated, status, string(raw))

	status, _, raw = send(t, app, "POST", "/wastage", `{"item":"Eggs","quantity":-1,"unit":"units","reason":"Expired"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(raw), "quantity must be greater than 0")

	status, _, raw = send(t, app, "GET", "/wastage?sort=cost&dir=desc", "")
	require.Equal(t, fiber.StatusOK, status)
	var list []WastageResponse
	require.NoError(t, json.Unmarshal(raw, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Lettuce", list[0].Item)
	assert.Nil(t, list[1].Cost)

	status, _, _ = send(t, app, "GET", "/wastage?sort=price", "")
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _, _ = send(t, other, "DELETE", "/wastage/"+created.ID, "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _, raw = send(t, app, "DELETE", "/wastage/"+created.ID, "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"id":"`+created.ID+`"}`, string(raw))

	status, _, _ = send(t, app, "GET", "/wastage/"+created.ID, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandlersDegradedMode(t *testing.T) {
	svc := newService(store.Unconfigured{})
	app := newApp(svc, owner1)

	status, header, raw := send(t, app, "GET", "/wastage", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, apperr.DegradedValue, header)
	assert.JSONEq(t, `[]`, string(raw))

	status, _, _ = send(t, app, "POST", "/wastage", `{"item":"Eggs","quantity":12,"unit":"units","reason":"Expired"}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)

	status, header, _ = send(t, app, "GET", "/donations", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, apperr.DegradedValue, header)
}
