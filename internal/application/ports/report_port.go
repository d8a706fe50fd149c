package ports

import (
	"context"
	"time"
)

// StockReportRow una fila por producto con stock.
type StockReportRow struct {
	ProductName    string
	Measure        string
	TotalQuantity  int
	Batches        int
	EarliestExpiry *time.Time
	Status         string
}

// StockReport datos del reporte de stock.
type StockReport struct {
	Owner       string // email o id del usuario
	GeneratedAt time.Time
	Filter      string
	Rows        []StockReportRow
	Expiring    int
	LowStock    int
}

// ReportGenerator genera el reporte PDF del stock agregado.
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, in StockReport) ([]byte, error)
}
