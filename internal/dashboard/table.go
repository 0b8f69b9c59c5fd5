package dashboard

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"wastage-backend/internal/models"
)

type SortKey string

const (
	SortItem     SortKey = "item"
	SortQuantity SortKey = "quantity"
	SortUnit     SortKey = "unit"
	SortCost     SortKey = "cost"
	SortReason   SortKey = "reason"
	SortDate     SortKey = "date"
)

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ReasonAll: sebep filtresi uygulanmaz
const ReasonAll = "all"

type TableQuery struct {
	ItemSubstring string
	Reason        string
	SortKey       SortKey
	SortDirection SortDirection
}

// DefaultTableQuery: tablo ilk açıldığında tarihe göre yeniden eskiye
func DefaultTableQuery() TableQuery {
	return TableQuery{Reason: ReasonAll, SortKey: SortDate, SortDirection: Desc}
}

// NewTableQuery: query string değerlerini doğrular, boş olanlar varsayılana düşer
func NewTableQuery(item, reason, sortKey, dir string) (TableQuery, error) {
	q := DefaultTableQuery()
	q.ItemSubstring = strings.TrimSpace(item)

	if reason != "" && reason != ReasonAll {
		if !models.WastageReason(reason).Valid() {
			return q, fmt.Errorf("unknown reason %q", reason)
		}
		q.Reason = reason
	}
	if sortKey != "" {
		switch k := SortKey(sortKey); k {
		case SortItem, SortQuantity, SortUnit, SortCost, SortReason, SortDate:
			q.SortKey = k
		default:
			return q, fmt.Errorf("unknown sort key %q", sortKey)
		}
	}
	if dir != "" {
		switch d := SortDirection(dir); d {
		case Asc, Desc:
			q.SortDirection = d
		default:
			return q, fmt.Errorf("sort direction must be %q or %q", Asc, Desc)
		}
	}
	return q, nil
}

// SortAndFilter: item'da büyük/küçük harf duyarsız arama, sebepte birebir eşleşme,
// ardından kararlı sıralama. Değeri olmayan (cost=nil) kayıtlar yönden bağımsız
// olarak her zaman sonda kalır; eşitlerde girdi sırası korunur.
func SortAndFilter(records []models.WastageEntry, q TableQuery) []models.WastageEntry {
	needle := strings.ToLower(q.ItemSubstring)

	out := make([]models.WastageEntry, 0, len(records))
	for _, r := range records {
		if needle != "" && !strings.Contains(strings.ToLower(r.Item), needle) {
			continue
		}
		if q.Reason != "" && q.Reason != ReasonAll && string(r.Reason) != q.Reason {
			continue
		}
		out = append(out, r)
	}

	if q.SortKey == "" {
		return out
	}

	desc := q.SortDirection == Desc
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if q.SortKey == SortCost {
			if a.Cost == nil || b.Cost == nil {
				return a.Cost != nil && b.Cost == nil
			}
		}
		c := compareBy(q.SortKey, a, b)
		if desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func compareBy(key SortKey, a, b models.WastageEntry) int {
	switch key {
	case SortItem:
		return strings.Compare(a.Item, b.Item)
	case SortQuantity:
		return cmp.Compare(a.Quantity, b.Quantity)
	case SortUnit:
		return strings.Compare(string(a.Unit), string(b.Unit))
	case SortCost:
		return cmp.Compare(*a.Cost, *b.Cost)
	case SortReason:
		return strings.Compare(string(a.Reason), string(b.Reason))
	case SortDate:
		return a.Date.Compare(b.Date)
	}
	return 0
}
