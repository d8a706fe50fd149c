package inventory

import (
	"time"

	"github.com/jhoicas/restocker/internal/domain/entity"
)

// Status etiqueta de estado mostrada al usuario.
type Status string

// Estados de un producto (precedencia de mayor a menor).
const (
	StatusExpired      Status = "Expired"
	StatusExpiringSoon Status = "Expiring Soon"
	StatusLowStock     Status = "Low Stock"
	StatusInStock      Status = "In Stock"
)

// Estados de un lote individual.
const (
	BatchStatusLowQty Status = "Low Qty"
	BatchStatusGood   Status = "Good"
)

// Tone color semántico asociado a un estado (badge y gráficos).
type Tone string

const (
	ToneRed    Tone = "red"
	ToneYellow Tone = "yellow"
	ToneOrange Tone = "orange"
	ToneGreen  Tone = "green"
)

// Classify devuelve el estado de un resumen:
// Expired > Expiring Soon > Low Stock > In Stock.
func Classify(g *ProductStockSummary) Status {
	switch {
	case g.HasExpired:
		return StatusExpired
	case g.HasExpiringSoon:
		return StatusExpiringSoon
	case g.IsLowStock:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// ClassifyBatch estado de un lote: Expired > Expiring Soon > Low Qty > Good.
// El umbral de cantidad es el de lote (th.BatchLowQty), no el de producto.
func ClassifyBatch(b entity.StockBatch, now time.Time, th Thresholds) Status {
	switch {
	case IsExpired(b.ExpiryDate, now):
		return StatusExpired
	case IsExpiringSoon(b.ExpiryDate, now, th.ExpiringSoonDays):
		return StatusExpiringSoon
	case b.Qty <= th.BatchLowQty:
		return BatchStatusLowQty
	default:
		return BatchStatusGood
	}
}

// ToneOf color del estado.
func ToneOf(s Status) Tone {
	switch s {
	case StatusExpired:
		return ToneRed
	case StatusExpiringSoon:
		return ToneYellow
	case StatusLowStock, BatchStatusLowQty:
		return ToneOrange
	default:
		return ToneGreen
	}
}
