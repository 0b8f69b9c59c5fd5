package export

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wastage-backend/internal/auth"
	"wastage-backend/internal/models"
)

var day = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

func cost(v float64) *float64 { return &v }

func records() []models.WastageEntry {
	return []models.WastageEntry{
		{ID: "a1", Item: `Bob's "Famous" Stew`, Quantity: 2.5, Unit: models.UnitKilogram, Reason: models.ReasonOverproduction, Date: day, Cost: cost(12.5), UserID: "u1"},
		{ID: "b2", Item: "Milk", Quantity: 1, Unit: models.UnitLitre, Reason: models.ReasonExpired, Date: day.AddDate(0, 0, -1), UserID: "u1"},
	}
}

func TestToCSVEmpty(t *testing.T) {
	assert.Equal(t, "ID,Date,Item,Quantity,Unit,Reason,Cost", ToCSV(nil, time.UTC))
}

func TestToCSVRows(t *testing.T) {
	want := "ID,Date,Item,Quantity,Unit,Reason,Cost\n" +
		`a1,6/15/2025,"Bob's ""Famous"" Stew",2.5,kg,Overproduction,12.50` + "\n" +
		`b2,6/14/2025,"Milk",1,L,Expired,`
	assert.Equal(t, want, ToCSV(records(), time.UTC))
}

func TestToXLSX(t *testing.T) {
	data, err := ToXLSX(records(), time.UTC)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, `Bob's "Famous" Stew`, rows[1][2])
	assert.Equal(t, "6/15/2025", rows[1][1])
	assert.Equal(t, "12.5", rows[1][6])
}

type staticSource []models.WastageEntry

func (s staticSource) Records(context.Context, auth.Identity) ([]models.WastageEntry, error) {
	return s, nil
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxUserIDKey, "u1")
		c.Locals(auth.CtxUserRoleKey, models.RoleOwner)
		return c.Next()
	})
	app.Get("/export.csv", CSVHandler(staticSource(records()), time.UTC))
	app.Get("/export.xlsx", XLSXHandler(staticSource(records()), time.UTC))
	return app
}

func TestCSVHandler(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/export.csv?reason=Expired", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="wastage_report.csv"`, resp.Header.Get("Content-Disposition"))

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ID,Date,Item,Quantity,Unit,Reason,Cost\nb2,6/14/2025,\"Milk\",1,L,Expired,", string(body))
}

func TestXLSXHandlerFilename(t *testing.T) {
	resp, err := newApp().Test(httptest.NewRequest("GET", "/export.xlsx?filename=june.xlsx", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="june.xlsx"`, resp.Header.Get("Content-Disposition"))

	body, _ := io.ReadAll(resp.Body)
	_, err = excelize.OpenReader(bytes.NewReader(body))
	assert.NoError(t, err)
}
