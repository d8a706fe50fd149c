// Package inventory contiene los servicios de dominio del tablero de stock:
// agregación de lotes por producto y clasificación de estado.
// Código puro: sin I/O, "ahora" se inyecta.
package inventory

import (
	"math"
	"time"

	"github.com/jhoicas/restocker/internal/domain/entity"
)

const day = 24 * time.Hour

// Thresholds umbrales de clasificación.
type Thresholds struct {
	LowStock         int // total por producto <= LowStock → stock bajo
	BatchLowQty      int // cantidad del lote <= BatchLowQty → Low Qty
	ExpiringSoonDays int // días hasta el vencimiento (inclusive) para "por vencer"
}

// DefaultThresholds valores históricos del tablero.
func DefaultThresholds() Thresholds {
	return Thresholds{LowStock: 10, BatchLowQty: 5, ExpiringSoonDays: 7}
}

// ProductStockSummary resumen derivado (no persistido) de todos los lotes de un producto.
type ProductStockSummary struct {
	ProductID       string              `json:"productId"`
	ProductName     string              `json:"productName"`
	ProductDetails  entity.Product      `json:"productDetails"`
	TotalQuantity   int                 `json:"totalQuantity"`
	StockEntries    []entity.StockBatch `json:"stockEntries"`
	EarliestExpiry  *time.Time          `json:"earliestExpiry"`
	HasExpired      bool                `json:"hasExpired"`
	HasExpiringSoon bool                `json:"hasExpiringSoon"`
	IsLowStock      bool                `json:"isLowStock"`
}

// Aggregation resultado de una pasada: mapa por producto más el orden de aparición.
type Aggregation struct {
	ByProduct map[string]*ProductStockSummary
	order     []string
	Now       time.Time
}

// Groups devuelve los resúmenes en el orden en que apareció cada producto en los lotes.
func (a *Aggregation) Groups() []*ProductStockSummary {
	out := make([]*ProductStockSummary, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.ByProduct[id])
	}
	return out
}

// Get devuelve el resumen de un producto.
func (a *Aggregation) Get(productID string) (*ProductStockSummary, bool) {
	g, ok := a.ByProduct[productID]
	return g, ok
}

// Len número de productos con al menos un lote.
func (a *Aggregation) Len() int { return len(a.order) }

// Aggregator agrupa lotes por producto.
type Aggregator struct {
	th  Thresholds
	now func() time.Time
}

// NewAggregator construye el agregador. now nil = time.Now.
func NewAggregator(th Thresholds, now func() time.Time) *Aggregator {
	if now == nil {
		now = time.Now
	}
	return &Aggregator{th: th, now: now}
}

// Thresholds devuelve los umbrales configurados.
func (a *Aggregator) Thresholds() Thresholds { return a.th }

// Now instante de referencia actual del agregador.
func (a *Aggregator) Now() time.Time { return a.now() }

// Aggregate agrupa los lotes por ProductID en una sola pasada.
// Los productos sin lotes no aparecen en el resultado.
func (a *Aggregator) Aggregate(batches []entity.StockBatch, products []entity.Product) *Aggregation {
	return AggregateAt(batches, products, a.now(), a.th)
}

// AggregateAt es Aggregate con el instante de referencia explícito.
// now se toma una sola vez para toda la pasada.
func AggregateAt(batches []entity.StockBatch, products []entity.Product, now time.Time, th Thresholds) *Aggregation {
	lookup := make(map[string]entity.Product, len(products))
	for _, p := range products {
		if _, dup := lookup[p.ID]; !dup {
			lookup[p.ID] = p
		}
	}

	agg := &Aggregation{ByProduct: make(map[string]*ProductStockSummary), Now: now}
	for _, b := range batches {
		g, ok := agg.ByProduct[b.ProductID]
		if !ok {
			details, found := lookup[b.ProductID]
			if !found {
				details = entity.UnknownProduct(b.ProductID)
			}
			g = &ProductStockSummary{
				ProductID:      b.ProductID,
				ProductName:    details.Name,
				ProductDetails: details,
				StockEntries:   []entity.StockBatch{},
			}
			agg.ByProduct[b.ProductID] = g
			agg.order = append(agg.order, b.ProductID)
		}

		g.TotalQuantity += b.Qty
		g.StockEntries = append(g.StockEntries, b)

		if b.ExpiryDate.Valid {
			exp := b.ExpiryDate.Time
			if g.EarliestExpiry == nil || exp.Before(*g.EarliestExpiry) {
				g.EarliestExpiry = &exp
			}
		}
		if IsExpired(b.ExpiryDate, now) {
			g.HasExpired = true
		}
		if IsExpiringSoon(b.ExpiryDate, now, th.ExpiringSoonDays) {
			g.HasExpiringSoon = true
		}
	}

	for _, id := range agg.order {
		g := agg.ByProduct[id]
		g.IsLowStock = g.TotalQuantity <= th.LowStock
	}
	return agg
}

// IsExpired true si la fecha de vencimiento es estrictamente anterior a now.
func IsExpired(expiry entity.Date, now time.Time) bool {
	return expiry.Valid && expiry.Time.Before(now)
}

// IsExpiringSoon true si no ha vencido y faltan como máximo windowDays días
// (redondeando hacia arriba) para el vencimiento.
func IsExpiringSoon(expiry entity.Date, now time.Time, windowDays int) bool {
	if !expiry.Valid || IsExpired(expiry, now) {
		return false
	}
	return DaysUntil(expiry.Time, now) <= windowDays
}

// DaysUntil días hasta t redondeando hacia arriba (0 si t == now).
func DaysUntil(t, now time.Time) int {
	return int(math.Ceil(float64(t.Sub(now)) / float64(day)))
}
