package dto

import (
	"time"

	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/internal/domain/inventory"
)

// AddStockRequest alta de un lote.
type AddStockRequest struct {
	ExpiryDate string `json:"expiry_date" validate:"required"` // YYYY-MM-DD, no anterior a hoy
	Qty        int    `json:"qty" validate:"min=1"`
}

// UseStockRequest consumo sobre un lote.
type UseStockRequest struct {
	StockID string `json:"stock_id" validate:"required"`
	UsedQty int    `json:"used_qty" validate:"min=1"`
}

// BatchResponse lote con su estado.
type BatchResponse struct {
	ID              string     `json:"id"`
	ExpiryDate      *time.Time `json:"expiry_date"`
	Qty             int        `json:"qty"`
	DaysUntilExpiry *int       `json:"days_until_expiry,omitempty"`
	Status          string     `json:"status"`
	Tone            string     `json:"tone"`
}

// UsageEntryResponse entrada del historial de uso (con el vencimiento de su lote).
type UsageEntryResponse struct {
	BatchID     string     `json:"batch_id"`
	BatchExpiry *time.Time `json:"batch_expiry"`
	Type        string     `json:"type"`
	UsedQty     int        `json:"used_qty"`
	Time        *time.Time `json:"time"`
}

// ProductStockResponse página de stock de un producto.
type ProductStockResponse struct {
	Product       ProductResponse      `json:"product"`
	TotalQuantity int                  `json:"total_quantity"`
	Status        string               `json:"status"`
	Tone          string               `json:"tone"`
	Batches       []BatchResponse      `json:"batches"`
	Usage         []UsageEntryResponse `json:"usage"`
}

// NewBatchResponse arma la salida de un lote con su estado evaluado en now.
func NewBatchResponse(b entity.StockBatch, now time.Time, th inventory.Thresholds) BatchResponse {
	status := inventory.ClassifyBatch(b, now, th)
	out := BatchResponse{
		ID:         b.ID,
		ExpiryDate: DatePtr(b.ExpiryDate),
		Qty:        b.Qty,
		Status:     string(status),
		Tone:       string(inventory.ToneOf(status)),
	}
	if b.ExpiryDate.Valid {
		d := inventory.DaysUntil(b.ExpiryDate.Time, now)
		out.DaysUntilExpiry = &d
	}
	return out
}

// DatePtr nil para fechas inválidas.
func DatePtr(d entity.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
