package dashboard

import (
	"github.com/shopspring/decimal"

	"wastage-backend/internal/models"
)

type GoalProgress struct {
	Goal        float64 `json:"goal"`
	CurrentCost float64 `json:"current_cost"`
	Percentage  float64 `json:"percentage"` // gerçek değer, 100'ü aşabilir
	Display     float64 `json:"display_percentage"`
	OverBudget  bool    `json:"over_budget"`
	OverBy      float64 `json:"over_by"`
}

// Progress: haftalık kayıtların maliyet toplamı / hedef * 100.
// goal <= 0 ise yüzde 0 döner, sıfıra bölme yapılmaz.
func Progress(weekly []models.WastageEntry, goal float64) GoalProgress {
	current := decimal.Zero
	for _, r := range weekly {
		if r.HasCost() {
			current = current.Add(decimal.NewFromFloat(*r.Cost))
		}
	}

	p := GoalProgress{
		Goal:        goal,
		CurrentCost: round2(current),
	}
	if goal <= 0 {
		return p
	}

	g := decimal.NewFromFloat(goal)
	pct := current.Div(g).Mul(decimal.NewFromInt(100))
	p.Percentage = pct.InexactFloat64()
	p.Display = p.Percentage
	if p.Display > 100 {
		p.Display = 100
	}
	if p.Percentage > 100 {
		p.OverBudget = true
		p.OverBy = round2(current.Sub(g))
	}
	return p
}
