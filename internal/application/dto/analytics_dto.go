package dto

import (
	"time"

	"github.com/jhoicas/restocker/internal/domain/inventory"
)

// ── En stock ──────────────────────────────────────────────────────────────────

// InStockRequest parámetros para GET /api/instock.
type InStockRequest struct {
	Filter string `query:"filter"` // all | expiring | low-stock
}

// StockSummaryDTO resumen agregado de un producto.
type StockSummaryDTO struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Product         ProductResponse `json:"product"`
	TotalQuantity   int             `json:"total_quantity"`
	Batches         []BatchResponse `json:"batches"`
	EarliestExpiry  *time.Time      `json:"earliest_expiry"`
	HasExpired      bool            `json:"has_expired"`
	HasExpiringSoon bool            `json:"has_expiring_soon"`
	IsLowStock      bool            `json:"is_low_stock"`
	Status          string          `json:"status"`
	Tone            string          `json:"tone"`
}

// FilterCountsDTO conteo por pestaña.
type FilterCountsDTO struct {
	All      int `json:"all"`
	Expiring int `json:"expiring"`
	LowStock int `json:"low_stock"`
}

// InStockResponse respuesta de GET /api/instock.
type InStockResponse struct {
	Filter      string            `json:"filter"`
	Counts      FilterCountsDTO   `json:"counts"`
	Items       []StockSummaryDTO `json:"items"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ── Gráficos ──────────────────────────────────────────────────────────────────

// ChartDatasetDTO serie de un gráfico.
type ChartDatasetDTO struct {
	Label       string   `json:"label"`
	Data        []int    `json:"data"`
	PointColors []string `json:"point_colors,omitempty"`
}

// ChartDTO datos listos para dibujar.
type ChartDTO struct {
	Labels   []string          `json:"labels"`
	Datasets []ChartDatasetDTO `json:"datasets"`
}

// ProductChartRequest parámetros para GET /api/instock/:productId/chart.
type ProductChartRequest struct {
	Tab string `query:"tab"` // stock | used
}

// ProductChartResponse gráfico de un producto más el panel lateral.
type ProductChartResponse struct {
	Tab            string     `json:"tab"`
	ProductID      string     `json:"product_id"`
	ProductName    string     `json:"product_name"`
	Measure        string     `json:"measure"`
	TotalQuantity  int        `json:"total_quantity"`
	BatchCount     int        `json:"batch_count"`
	EarliestExpiry *time.Time `json:"earliest_expiry"`
	Status         string     `json:"status"`
	Chart          ChartDTO   `json:"chart"`
}

// NewStockSummaryDTO convierte un resumen agregado; los lotes se evalúan con el mismo now.
func NewStockSummaryDTO(g *inventory.ProductStockSummary, now time.Time, th inventory.Thresholds) StockSummaryDTO {
	status := inventory.Classify(g)
	out := StockSummaryDTO{
		ProductID:       g.ProductID,
		ProductName:     g.ProductName,
		Product:         FromProduct(g.ProductDetails),
		TotalQuantity:   g.TotalQuantity,
		Batches:         make([]BatchResponse, 0, len(g.StockEntries)),
		EarliestExpiry:  g.EarliestExpiry,
		HasExpired:      g.HasExpired,
		HasExpiringSoon: g.HasExpiringSoon,
		IsLowStock:      g.IsLowStock,
		Status:          string(status),
		Tone:            string(inventory.ToneOf(status)),
	}
	for _, b := range g.StockEntries {
		out.Batches = append(out.Batches, NewBatchResponse(b, now, th))
	}
	return out
}

// FromCounts convierte los conteos por pestaña.
func FromCounts(c inventory.FilterCounts) FilterCountsDTO {
	return FilterCountsDTO{All: c.All, Expiring: c.Expiring, LowStock: c.LowStock}
}
