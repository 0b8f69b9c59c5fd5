package dashboard

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wastage-backend/internal/models"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func cost(v float64) *float64 { return &v }

func entry(id, item string, qty float64, unit models.WastageUnit, reason models.WastageReason, c *float64, date time.Time) models.WastageEntry {
	return models.WastageEntry{ID: id, Item: item, Quantity: qty, Unit: unit, Reason: reason, Cost: c, Date: date, UserID: "u1"}
}

func sample() []models.WastageEntry {
	return []models.WastageEntry{
		entry("1", "Tomatoes", 2, models.UnitKilogram, models.ReasonSpoilage, cost(5), now.Add(-time.Hour)),
		entry("2", "Milk", 1, models.UnitLitre, models.ReasonSpoilage, cost(3), now.Add(-2*time.Hour)),
		entry("3", "Rice", 500, models.UnitGram, models.ReasonOverproduction, nil, now.Add(-26*time.Hour)),
		entry("4", "Bread", 4, models.UnitPiece, models.ReasonExpired, cost(2.5), now.Add(-50*time.Hour)),
		entry("5", "Soup", 1.5, models.UnitKilogram, models.ReasonCustomerLeftover, cost(1.25), now.Add(-26*time.Hour)),
	}
}

func TestTotalsByReasonScenario(t *testing.T) {
	records := sample()[:2]
	totals := TotalsByReason(records, CostValue)

	require.Len(t, totals, 5)
	for i, rt := range totals {
		assert.Equal(t, models.WastageReasons[i], rt.Reason)
		if rt.Reason == models.ReasonSpoilage {
			assert.Equal(t, 8.0, rt.Total)
		} else {
			assert.Equal(t, 0.0, rt.Total)
		}
	}
}

func TestTotalsByReasonSumsEverything(t *testing.T) {
	records := sample()
	totals := TotalsByReason(records, CostValue)

	var sum float64
	for _, rt := range totals {
		assert.GreaterOrEqual(t, rt.Total, 0.0)
		sum += rt.Total
	}
	assert.InDelta(t, 5+3+2.5+1.25, sum, 0.001)
}

func TestTotalsByReasonEmpty(t *testing.T) {
	totals := TotalsByReason(nil, CostValue)
	require.Len(t, totals, 5)
	for _, rt := range totals {
		assert.Zero(t, rt.Total)
	}
}

func TestMassValueConversion(t *testing.T) {
	totals := TotalsByReason(sample(), MassValue(DefaultMassTable))
	byReason := map[models.WastageReason]float64{}
	for _, rt := range totals {
		byReason[rt.Reason] = rt.Total
	}
	// 2kg domates + 1L süt (0)
	assert.Equal(t, 2.0, byReason[models.ReasonSpoilage])
	// 500g -> 0.5kg
	assert.Equal(t, 0.5, byReason[models.ReasonOverproduction])
	// units -> 0
	assert.Equal(t, 0.0, byReason[models.ReasonExpired])
	assert.Equal(t, 1.5, byReason[models.ReasonCustomerLeftover])
}

func TestConversionTableIsExtensible(t *testing.T) {
	table := DefaultMassTable.With(models.UnitLitre, decimal.NewFromInt(1))
	assert.True(t, table.Kilograms(1, models.UnitLitre).Equal(decimal.NewFromInt(1)))
	assert.True(t, DefaultMassTable.Kilograms(1, models.UnitLitre).IsZero(), "default table untouched")
}

func TestDailyTotalsOrderAndGrouping(t *testing.T) {
	points := DailyTotals(sample(), CostValue, time.UTC)

	require.Len(t, points, 3)
	assert.Equal(t, DayTotal{Day: "2025-06-13", Total: 2.5}, points[0])
	// Rice maliyetsiz, trend'e girmez
	assert.Equal(t, DayTotal{Day: "2025-06-14", Total: 1.25}, points[1])
	assert.Equal(t, DayTotal{Day: "2025-06-15", Total: 8}, points[2])
}

func TestDailyTotalsReorderInvariant(t *testing.T) {
	records := sample()
	reversed := make([]models.WastageEntry, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}
	assert.Equal(t, DailyTotals(records, CostValue, time.UTC), DailyTotals(reversed, CostValue, time.UTC))
}

func TestDailyTotalsUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	late := []models.WastageEntry{
		entry("1", "Fish", 1, models.UnitKilogram, models.ReasonExpired, cost(10), time.Date(2025, 6, 14, 22, 30, 0, 0, time.UTC)),
	}
	points := DailyTotals(late, CostValue, loc)
	require.Len(t, points, 1)
	assert.Equal(t, "2025-06-15", points[0].Day)
}

func TestFilterByWindowBoundaries(t *testing.T) {
	records := []models.WastageEntry{
		entry("old", "Old", 1, models.UnitKilogram, models.ReasonExpired, nil, now.Add(-8*24*time.Hour)),
		entry("edge", "Edge", 1, models.UnitKilogram, models.ReasonExpired, nil, now.Add(-(6*24+23)*time.Hour)),
		entry("new", "New", 1, models.UnitKilogram, models.ReasonExpired, nil, now),
	}

	got := FilterByWindow(records, 7, now)
	ids := []string{}
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"edge", "new"}, ids)
	assert.Len(t, records, 3, "input not mutated")
}

func TestProgress(t *testing.T) {
	records := sample()

	p := Progress(records, 0)
	assert.Zero(t, p.Percentage)
	assert.False(t, p.OverBudget)
	assert.Equal(t, 11.75, p.CurrentCost)

	p = Progress(records, 20)
	assert.InDelta(t, 58.75, p.Percentage, 0.0001)
	assert.InDelta(t, 58.75, p.Display, 0.0001)
	assert.False(t, p.OverBudget)

	p = Progress(records, 10)
	assert.InDelta(t, 117.5, p.Percentage, 0.0001)
	assert.Equal(t, 100.0, p.Display)
	assert.True(t, p.OverBudget)
	assert.Equal(t, 1.75, p.OverBy)
}

func ids(entries []models.WastageEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestSortAndFilterDefaultIsDateDesc(t *testing.T) {
	got := SortAndFilter(sample(), DefaultTableQuery())
	assert.Equal(t, []string{"1", "2", "3", "5", "4"}, ids(got))
}

func TestSortAndFilterFilters(t *testing.T) {
	q := DefaultTableQuery()
	q.ItemSubstring = "TOM"
	got := SortAndFilter(sample(), q)
	assert.Equal(t, []string{"1"}, ids(got), "Tomatoes only, case-insensitive")

	q = DefaultTableQuery()
	q.Reason = string(models.ReasonSpoilage)
	got = SortAndFilter(sample(), q)
	assert.Equal(t, []string{"1", "2"}, ids(got))
}

func TestSortAndFilterMissingCostLast(t *testing.T) {
	for _, dir := range []SortDirection{Asc, Desc} {
		q := TableQuery{SortKey: SortCost, SortDirection: dir}
		got := SortAndFilter(sample(), q)
		require.Len(t, got, 5)
		assert.Equal(t, "3", got[4].ID, "nil cost last for %s", dir)
	}

	asc := SortAndFilter(sample(), TableQuery{SortKey: SortCost, SortDirection: Asc})
	assert.Equal(t, []string{"5", "4", "2", "1", "3"}, ids(asc))
	desc := SortAndFilter(sample(), TableQuery{SortKey: SortCost, SortDirection: Desc})
	assert.Equal(t, []string{"1", "2", "4", "5", "3"}, ids(desc))
}

func TestSortAndFilterIdempotentAndStable(t *testing.T) {
	records := sample()
	q := TableQuery{SortKey: SortReason, SortDirection: Asc}

	once := SortAndFilter(records, q)
	twice := SortAndFilter(once, q)
	assert.Equal(t, ids(once), ids(twice))

	// iki Spoilage kaydı girdi sırasını korur
	assert.Equal(t, []string{"5", "4", "3", "1", "2"}, ids(once))
}

func TestNewTableQuery(t *testing.T) {
	q, err := NewTableQuery("", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTableQuery(), q)

	q, err = NewTableQuery(" rice ", "Overproduction", "quantity", "asc")
	require.NoError(t, err)
	assert.Equal(t, TableQuery{ItemSubstring: "rice", Reason: "Overproduction", SortKey: SortQuantity, SortDirection: Asc}, q)

	_, err = NewTableQuery("", "Theft", "", "")
	assert.Error(t, err)
	_, err = NewTableQuery("", "", "price", "")
	assert.Error(t, err)
	_, err = NewTableQuery("", "", "", "up")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	mode, _, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeCost, mode)

	mode, _, err = ParseMode("mass")
	require.NoError(t, err)
	assert.Equal(t, ModeMass, mode)

	_, _, err = ParseMode("volume")
	assert.Error(t, err)
}

func TestBuildSummary(t *testing.T) {
	goal := 10.0
	s := BuildSummary(sample(), now, time.UTC, &goal, ModeCost, CostValue)

	assert.True(t, s.HasCostData)
	assert.Equal(t, 5, s.RecordCount)
	assert.Equal(t, 5, s.WeeklyCount)
	assert.Len(t, s.Reasons, 5)
	require.NotNil(t, s.Goal)
	assert.True(t, s.Goal.OverBudget)

	s = BuildSummary(nil, now, time.UTC, nil, ModeCost, CostValue)
	assert.False(t, s.HasCostData)
	assert.Nil(t, s.Goal)
	assert.Empty(t, s.Trend)
}

func TestReportViewRange(t *testing.T) {
	v := NewReportView("Great week", now, time.UTC)
	assert.Equal(t, "2025-06-08", v.From)
	assert.Equal(t, "2025-06-15", v.To)
	assert.Equal(t, "Great week", v.Summary)
}
