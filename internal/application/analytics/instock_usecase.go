// Package analytics contiene las vistas derivadas del stock agregado:
// listado "en stock", gráficos, resumen del dashboard y reporte PDF.
package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/inventory"
	"github.com/jhoicas/restocker/pkg/logger"
)

// InStockUseCase agrega el listado del backend y arma las vistas.
type InStockUseCase struct {
	backend ports.InventoryBackend
	agg     *inventory.Aggregator
	log     *logger.Logger
}

// NewInStockUseCase construye el caso de uso.
func NewInStockUseCase(backend ports.InventoryBackend, agg *inventory.Aggregator, log *logger.Logger) *InStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &InStockUseCase{backend: backend, agg: agg, log: log.Named("instock")}
}

// load trae el listado y lo agrega en una sola pasada.
func (uc *InStockUseCase) load(ctx context.Context, s ports.Session) (*inventory.Aggregation, error) {
	listing, err := uc.backend.InStock(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("en stock: %w", err)
	}
	agg := uc.agg.Aggregate(listing.Batches, listing.Products)
	uc.log.Debug().
		Str("user_id", s.UserID).
		Int("batches", len(listing.Batches)).
		Int("groups", agg.Len()).
		Msg("stock agregado")
	return agg, nil
}

// List devuelve los grupos de la pestaña pedida y los conteos de todas las pestañas.
func (uc *InStockUseCase) List(ctx context.Context, s ports.Session, filter string) (*dto.InStockResponse, error) {
	f, ok := inventory.ParseFilter(filter)
	if !ok {
		return nil, domain.Invalid("filter", "valores permitidos: all, expiring, low-stock")
	}
	agg, err := uc.load(ctx, s)
	if err != nil {
		return nil, err
	}
	groups := agg.Groups()
	visible := inventory.Apply(groups, f)

	th := uc.agg.Thresholds()
	out := &dto.InStockResponse{
		Filter:      string(f),
		Counts:      dto.FromCounts(inventory.Count(groups)),
		Items:       make([]dto.StockSummaryDTO, 0, len(visible)),
		GeneratedAt: agg.Now,
	}
	for _, g := range visible {
		out.Items = append(out.Items, dto.NewStockSummaryDTO(g, agg.Now, th))
	}
	return out, nil
}

// StockChart datos del gráfico general de stock.
func (uc *InStockUseCase) StockChart(ctx context.Context, s ports.Session) (*dto.ChartDTO, error) {
	agg, err := uc.load(ctx, s)
	if err != nil {
		return nil, err
	}
	chart := BuildStockChart(agg.Groups())
	return &chart, nil
}

// ProductChart gráfico de un producto (pestaña stock o used) más el panel lateral.
// Un producto sin lotes en el listado no tiene gráfico (ErrNotFound).
func (uc *InStockUseCase) ProductChart(ctx context.Context, s ports.Session, productID, tab string) (*dto.ProductChartResponse, error) {
	tab = strings.ToLower(strings.TrimSpace(tab))
	if tab == "" {
		tab = TabStock
	}
	if tab != TabStock && tab != TabUsed {
		return nil, domain.Invalid("tab", "valores permitidos: stock, used")
	}
	agg, err := uc.load(ctx, s)
	if err != nil {
		return nil, err
	}
	g, ok := agg.Get(productID)
	if !ok {
		return nil, fmt.Errorf("producto %s sin lotes en stock: %w", productID, domain.ErrNotFound)
	}

	out := &dto.ProductChartResponse{
		Tab:            tab,
		ProductID:      g.ProductID,
		ProductName:    g.ProductName,
		Measure:        g.ProductDetails.Measure,
		TotalQuantity:  g.TotalQuantity,
		BatchCount:     len(g.StockEntries),
		EarliestExpiry: g.EarliestExpiry,
		Status:         string(inventory.Classify(g)),
	}
	if tab == TabUsed {
		out.Chart = BuildUsedChart(g)
	} else {
		out.Chart = BuildBatchChart(g)
	}
	return out, nil
}
