package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"wastage-backend/internal/models"
)

var Header = []string{"ID", "Date", "Item", "Quantity", "Unit", "Reason", "Cost"}

// ShortDate: tablo ve CSV'de kullanılan kısa tarih (6/15/2025)
const ShortDate = "1/2/2006"

// ToCSV: item her zaman tırnak içinde, içindeki tırnaklar ikilenir.
// Satırlar \n ile birleşir, boş girdi sadece başlık döner.
func ToCSV(records []models.WastageEntry, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	b.WriteString(strings.Join(Header, ","))
	for _, r := range records {
		b.WriteByte('\n')
		b.WriteString(strings.Join([]string{
			r.ID,
			r.Date.In(loc).Format(ShortDate),
			quote(r.Item),
			formatQuantity(r.Quantity),
			string(r.Unit),
			string(r.Reason),
			formatCost(r.Cost),
		}, ","))
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func formatCost(c *float64) string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *c)
}
