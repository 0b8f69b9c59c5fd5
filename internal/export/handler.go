package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wastage-backend/internal/apperr"
	"wastage-backend/internal/auth"
	"wastage-backend/internal/dashboard"
	"wastage-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultFilename = "wastage_report"

type RecordSource interface {
	Records(ctx context.Context, id auth.Identity) ([]models.WastageEntry, error)
}

// filenameFrom: ?filename=...; uzantı ve yol karakterleri atılır
func filenameFrom(c *fiber.Ctx, ext string) string {
	name := strings.TrimSpace(c.Query("filename"))
	name = strings.TrimSuffix(name, ext)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\n', '\r':
			return -1
		}
		return r
	}, name)
	if name == "" {
		name = defaultFilename
	}
	return name + ext
}

// tablo ile aynı filtre/sıralama uygulanır
func load(c *fiber.Ctx, src RecordSource) ([]models.WastageEntry, error) {
	id, err := auth.IdentityFrom(c)
	if err != nil {
		return nil, err
	}
	q, err := dashboard.NewTableQuery(c.Query("item"), c.Query("reason"), c.Query("sort"), c.Query("dir"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	records, err := src.Records(c.UserContext(), id)
	if err != nil {
		return nil, apperr.FromStore(err, "Wastage records could not be loaded")
	}
	return dashboard.SortAndFilter(records, q), nil
}

// GET /api/wastage/export.csv?filename=&item=&reason=&sort=&dir=
func CSVHandler(src RecordSource, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := load(c, src)
		if err != nil {
			return err
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filenameFrom(c, ".csv")))
		return c.SendString(ToCSV(records, loc))
	}
}

// GET /api/wastage/export.xlsx?filename=...
func XLSXHandler(src RecordSource, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := load(c, src)
		if err != nil {
			return err
		}

		data, err := ToXLSX(records, loc)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel file could not be created")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filenameFrom(c, ".xlsx")))
		return c.Send(data)
	}
}
