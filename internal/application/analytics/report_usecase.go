package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/inventory"
)

// ReportUseCase genera el PDF de los resúmenes de stock.
type ReportUseCase struct {
	instock   *InStockUseCase
	generator ports.ReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(instock *InStockUseCase, generator ports.ReportGenerator) *ReportUseCase {
	return &ReportUseCase{instock: instock, generator: generator}
}

// StockReport devuelve los bytes del PDF para la pestaña pedida.
func (uc *ReportUseCase) StockReport(ctx context.Context, s ports.Session, owner, filter string) ([]byte, error) {
	f, ok := inventory.ParseFilter(filter)
	if !ok {
		return nil, domain.Invalid("filter", "valores permitidos: all, expiring, low-stock")
	}
	agg, err := uc.instock.load(ctx, s)
	if err != nil {
		return nil, err
	}
	groups := agg.Groups()
	counts := inventory.Count(groups)

	if owner == "" {
		owner = s.UserID
	}
	report := ports.StockReport{
		Owner:       owner,
		GeneratedAt: agg.Now,
		Filter:      string(f),
		Expiring:    counts.Expiring,
		LowStock:    counts.LowStock,
	}
	for _, g := range inventory.Apply(groups, f) {
		report.Rows = append(report.Rows, ports.StockReportRow{
			ProductName:    g.ProductName,
			Measure:        g.ProductDetails.Measure,
			TotalQuantity:  g.TotalQuantity,
			Batches:        len(g.StockEntries),
			EarliestExpiry: g.EarliestExpiry,
			Status:         string(inventory.Classify(g)),
		})
	}

	pdf, err := uc.generator.GenerateStockReport(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("reporte de stock: %w", err)
	}
	return pdf, nil
}
