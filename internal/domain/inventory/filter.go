package inventory

import "strings"

// Filter pestaña de la vista "en stock".
type Filter string

const (
	FilterAll      Filter = "all"
	FilterExpiring Filter = "expiring"
	FilterLowStock Filter = "low-stock"
)

// ParseFilter interpreta el query param; vacío = all.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, true
	case FilterExpiring:
		return FilterExpiring, true
	case FilterLowStock:
		return FilterLowStock, true
	default:
		return "", false
	}
}

// Match indica si el grupo entra en la pestaña.
// "expiring" incluye también los vencidos.
func (f Filter) Match(g *ProductStockSummary) bool {
	switch f {
	case FilterExpiring:
		return g.HasExpired || g.HasExpiringSoon
	case FilterLowStock:
		return g.IsLowStock
	default:
		return true
	}
}

// FilterCounts conteo por pestaña (se muestra en los botones).
type FilterCounts struct {
	All      int `json:"all"`
	Expiring int `json:"expiring"`
	LowStock int `json:"lowStock"`
}

// Apply filtra conservando el orden.
func Apply(groups []*ProductStockSummary, f Filter) []*ProductStockSummary {
	out := make([]*ProductStockSummary, 0, len(groups))
	for _, g := range groups {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	return out
}

// Count cuenta los grupos de cada pestaña.
func Count(groups []*ProductStockSummary) FilterCounts {
	c := FilterCounts{All: len(groups)}
	for _, g := range groups {
		if FilterExpiring.Match(g) {
			c.Expiring++
		}
		if FilterLowStock.Match(g) {
			c.LowStock++
		}
	}
	return c
}
