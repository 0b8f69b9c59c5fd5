package dashboard

import (
	"time"

	"wastage-backend/internal/models"
)

// WeeklyWindowDays: haftalık özet, içgörü ve hedef takibi için pencere
const WeeklyWindowDays = 7

// FilterByWindow: date >= now - days*24h olan kayıtlar. Girdi değiştirilmez.
func FilterByWindow(records []models.WastageEntry, days int, now time.Time) []models.WastageEntry {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	out := make([]models.WastageEntry, 0, len(records))
	for _, r := range records {
		if !r.Date.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Weekly: FilterByWindow(records, 7, now)
func Weekly(records []models.WastageEntry, now time.Time) []models.WastageEntry {
	return FilterByWindow(records, WeeklyWindowDays, now)
}
