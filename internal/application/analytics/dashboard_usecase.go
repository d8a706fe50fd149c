package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/internal/domain/inventory"
)

// DashboardUseCase arma el resumen de la pantalla principal.
//
// Los productos sin lotes no aparecen en la vista "en stock"; el resumen los
// lista aparte para que no queden ocultos.
type DashboardUseCase struct {
	backend ports.InventoryBackend
	agg     *inventory.Aggregator
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(backend ports.InventoryBackend, agg *inventory.Aggregator) *DashboardUseCase {
	return &DashboardUseCase{backend: backend, agg: agg}
}

// Overview dos llamadas en paralelo:
//  1. ListProducts → catálogo completo
//  2. InStock      → lotes a agregar
func (uc *DashboardUseCase) Overview(ctx context.Context, s ports.Session) (*dto.DashboardOverviewDTO, error) {
	type productsResult struct {
		products []entity.Product
		err      error
	}
	type inStockResult struct {
		listing *ports.InStockListing
		err     error
	}

	productsCh := make(chan productsResult, 1)
	inStockCh := make(chan inStockResult, 1)

	go func() {
		p, err := uc.backend.ListProducts(ctx, s)
		productsCh <- productsResult{p, err}
	}()
	go func() {
		l, err := uc.backend.InStock(ctx, s)
		inStockCh <- inStockResult{l, err}
	}()

	products := <-productsCh
	inStock := <-inStockCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if inStock.err != nil {
		return nil, fmt.Errorf("dashboard: en stock: %w", inStock.err)
	}

	catalog := products.products
	if len(catalog) == 0 {
		catalog = inStock.listing.Products
	}
	agg := uc.agg.Aggregate(inStock.listing.Batches, catalog)
	groups := agg.Groups()

	out := &dto.DashboardOverviewDTO{
		TotalProducts:        len(catalog),
		ProductsWithStock:    agg.Len(),
		ProductsWithoutStock: []string{},
		Counts:               dto.FromCounts(inventory.Count(groups)),
		GeneratedAt:          agg.Now,
	}
	for _, p := range catalog {
		if _, ok := agg.Get(p.ID); !ok {
			out.ProductsWithoutStock = append(out.ProductsWithoutStock, p.Name)
		}
	}
	for _, g := range groups {
		out.TotalUnits += g.TotalQuantity
		if g.HasExpired {
			out.ExpiredProducts++
		}
		out.NextExpiry = nextExpiry(out.NextExpiry, g, agg)
	}
	return out, nil
}

// nextExpiry el vencimiento válido más cercano que aún no ocurrió.
func nextExpiry(cur *dto.NextExpiryDTO, g *inventory.ProductStockSummary, agg *inventory.Aggregation) *dto.NextExpiryDTO {
	for _, b := range g.StockEntries {
		if !b.ExpiryDate.Valid || inventory.IsExpired(b.ExpiryDate, agg.Now) {
			continue
		}
		if cur != nil && !b.ExpiryDate.Time.Before(cur.ExpiryDate) {
			continue
		}
		cur = &dto.NextExpiryDTO{
			ProductID:   g.ProductID,
			ProductName: g.ProductName,
			ExpiryDate:  b.ExpiryDate.Time,
			DaysLeft:    inventory.DaysUntil(b.ExpiryDate.Time, agg.Now),
		}
	}
	return cur
}
