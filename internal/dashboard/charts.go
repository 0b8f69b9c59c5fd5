package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"wastage-backend/internal/models"
)

// ValueFunc: kaydın grafiğe katkısı. ok=false ise kayıt toplamdan tamamen çıkar.
type ValueFunc func(models.WastageEntry) (decimal.Decimal, bool)

// CostValue: sadece maliyeti girilmiş kayıtlar sayılır
func CostValue(e models.WastageEntry) (decimal.Decimal, bool) {
	if e.Cost == nil {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(*e.Cost), true
}

// MassValue: miktarı kilograma çevirir, çevrilemeyen birim 0 katkı yapar
func MassValue(table ConversionTable) ValueFunc {
	return func(e models.WastageEntry) (decimal.Decimal, bool) {
		return table.Kilograms(e.Quantity, e.Unit), true
	}
}

type Mode string

const (
	ModeCost Mode = "cost"
	ModeMass Mode = "mass"
)

// ParseMode: boş değer cost kabul edilir
func ParseMode(s string) (Mode, ValueFunc, error) {
	switch Mode(s) {
	case "", ModeCost:
		return ModeCost, CostValue, nil
	case ModeMass:
		return ModeMass, MassValue(DefaultMassTable), nil
	default:
		return "", nil, fmt.Errorf("mode must be %q or %q", ModeCost, ModeMass)
	}
}

type DayTotal struct {
	Day   string  `json:"date"` // YYYY-MM-DD (yerel takvim günü)
	Total float64 `json:"total"`
}

// DailyTotals: kayıtları yerel takvim gününe göre gruplar ve toplar.
// Sonuç gün sırasına göre artan, 2 haneye yuvarlanmış.
func DailyTotals(records []models.WastageEntry, valueOf ValueFunc, loc *time.Location) []DayTotal {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[string]decimal.Decimal)
	for _, r := range records {
		v, ok := valueOf(r)
		if !ok {
			continue
		}
		day := r.Date.In(loc).Format("2006-01-02")
		buckets[day] = buckets[day].Add(v)
	}

	days := make([]string, 0, len(buckets))
	for d := range buckets {
		days = append(days, d)
	}
	// ISO tarih string'i leksikografik sıralanınca kronolojik olur
	sort.Strings(days)

	out := make([]DayTotal, 0, len(days))
	for _, d := range days {
		out = append(out, DayTotal{Day: d, Total: round2(buckets[d])})
	}
	return out
}

type ReasonTotal struct {
	Reason models.WastageReason `json:"name"`
	Total  float64              `json:"value"`
}

// TotalsByReason: beş sebebin hepsi sabit sırada döner, aktivite yoksa 0
func TotalsByReason(records []models.WastageEntry, valueOf ValueFunc) []ReasonTotal {
	sums := make(map[models.WastageReason]decimal.Decimal, len(models.WastageReasons))
	for _, r := range records {
		if !r.Reason.Valid() {
			continue
		}
		v, ok := valueOf(r)
		if !ok {
			continue
		}
		sums[r.Reason] = sums[r.Reason].Add(v)
	}

	out := make([]ReasonTotal, 0, len(models.WastageReasons))
	for _, reason := range models.WastageReasons {
		out = append(out, ReasonTotal{Reason: reason, Total: round2(sums[reason])})
	}
	return out
}

// HasCostData: maliyet grafikleri sadece en az bir maliyetli kayıt varsa anlamlı
func HasCostData(records []models.WastageEntry) bool {
	for _, r := range records {
		if r.HasCost() {
			return true
		}
	}
	return false
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
