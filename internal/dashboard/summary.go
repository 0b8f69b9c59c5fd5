package dashboard

import (
	"time"

	"wastage-backend/internal/models"
)

type Summary struct {
	Mode        Mode          `json:"mode"`
	HasCostData bool          `json:"has_cost_data"`
	RecordCount int           `json:"record_count"`
	Trend       []DayTotal    `json:"trend"`
	Reasons     []ReasonTotal `json:"reasons"`
	WeeklyCount int           `json:"weekly_count"`
	Goal        *GoalProgress `json:"goal"` // hedef yoksa null
}

// BuildSummary: dashboard ekranının tek istekte ihtiyaç duyduğu her şey
func BuildSummary(records []models.WastageEntry, now time.Time, loc *time.Location, goal *float64, mode Mode, valueOf ValueFunc) Summary {
	weekly := Weekly(records, now)

	s := Summary{
		Mode:        mode,
		HasCostData: HasCostData(records),
		RecordCount: len(records),
		Trend:       DailyTotals(records, valueOf, loc),
		Reasons:     TotalsByReason(records, valueOf),
		WeeklyCount: len(weekly),
	}
	if goal != nil && *goal > 0 {
		p := Progress(weekly, *goal)
		s.Goal = &p
	}
	return s
}

// ReportView: önceden üretilmiş özetin salt-okunur görünümü.
// Tarih aralığı özetin üretildiği andan bağımsız olarak her zaman bugün-7 .. bugün.
type ReportView struct {
	Summary string `json:"summary"`
	From    string `json:"from"`
	To      string `json:"to"`
}

func NewReportView(summary string, now time.Time, loc *time.Location) ReportView {
	if loc == nil {
		loc = time.Local
	}
	today := now.In(loc)
	return ReportView{
		Summary: summary,
		From:    today.AddDate(0, 0, -WeeklyWindowDays).Format("2006-01-02"),
		To:      today.Format("2006-01-02"),
	}
}
