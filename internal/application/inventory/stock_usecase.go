// Package inventory contiene los casos de uso sobre los lotes de un producto:
// página de stock, alta de lotes y consumo.
package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/internal/domain/inventory"
	"github.com/jhoicas/restocker/pkg/logger"
)

// StockUseCase operaciones sobre los lotes de un producto.
type StockUseCase struct {
	backend ports.InventoryBackend
	agg     *inventory.Aggregator
	log     *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(backend ports.InventoryBackend, agg *inventory.Aggregator, log *logger.Logger) *StockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &StockUseCase{backend: backend, agg: agg, log: log.Named("stock")}
}

// ProductStock arma la página de stock de un producto: lotes ordenados por
// vencimiento, total, estado e historial de uso (más reciente primero).
func (uc *StockUseCase) ProductStock(ctx context.Context, s ports.Session, productID string) (*dto.ProductStockResponse, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.Invalid("productId", "el producto es requerido")
	}

	type productsResult struct {
		products []entity.Product
		err      error
	}
	type stockResult struct {
		batches []entity.StockBatch
		err     error
	}
	productsCh := make(chan productsResult, 1)
	stockCh := make(chan stockResult, 1)

	go func() {
		p, err := uc.backend.ListProducts(ctx, s)
		productsCh <- productsResult{p, err}
	}()
	go func() {
		b, err := uc.backend.ListStock(ctx, s, productID)
		stockCh <- stockResult{b, err}
	}()

	products := <-productsCh
	stock := <-stockCh

	if products.err != nil {
		return nil, fmt.Errorf("stock: productos: %w", products.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("stock: lotes: %w", stock.err)
	}

	product, found := findProduct(products.products, productID)
	if !found && len(stock.batches) == 0 {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return uc.buildPage(product, stock.batches), nil
}

func (uc *StockUseCase) buildPage(product entity.Product, batches []entity.StockBatch) *dto.ProductStockResponse {
	now := uc.agg.Now()
	th := uc.agg.Thresholds()

	for i := range batches {
		batches[i].ProductID = product.ID
	}
	agg := inventory.AggregateAt(batches, []entity.Product{product}, now, th)
	summary, ok := agg.Get(product.ID)
	if !ok {
		summary = &inventory.ProductStockSummary{
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductDetails: product,
			IsLowStock:     0 <= th.LowStock,
		}
	}
	status := inventory.Classify(summary)

	sorted := make([]entity.StockBatch, len(batches))
	copy(sorted, batches)
	sort.SliceStable(sorted, func(i, j int) bool {
		return expiryLess(sorted[i].ExpiryDate, sorted[j].ExpiryDate)
	})

	out := &dto.ProductStockResponse{
		Product:       dto.FromProduct(product),
		TotalQuantity: summary.TotalQuantity,
		Status:        string(status),
		Tone:          string(inventory.ToneOf(status)),
		Batches:       make([]dto.BatchResponse, 0, len(sorted)),
		Usage:         usageHistory(sorted),
	}
	for _, b := range sorted {
		out.Batches = append(out.Batches, dto.NewBatchResponse(b, now, th))
	}
	return out
}

// AddStock valida y agrega un lote; devuelve la página de stock actualizada.
func (uc *StockUseCase) AddStock(ctx context.Context, s ports.Session, productID string, in dto.AddStockRequest) (*dto.ProductStockResponse, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.Invalid("productId", "el producto es requerido")
	}
	expiry, err := ValidateNewStock(in, uc.agg.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.backend.AddStock(ctx, s, productID, ports.NewStock{ExpiryDate: expiry, Qty: in.Qty}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", s.UserID).Str("product_id", productID).Int("qty", in.Qty).Msg("lote agregado")
	return uc.ProductStock(ctx, s, productID)
}

// UseStock consume usedQty del lote indicado; devuelve la página actualizada.
// Las reglas 0 < usedQty <= qty del lote se evalúan antes de la llamada que modifica el stock.
func (uc *StockUseCase) UseStock(ctx context.Context, s ports.Session, productID string, in dto.UseStockRequest) (*dto.ProductStockResponse, error) {
	productID = strings.TrimSpace(productID)
	stockID := strings.TrimSpace(in.StockID)
	switch {
	case productID == "":
		return nil, domain.Invalid("productId", "el producto es requerido")
	case stockID == "":
		return nil, domain.Invalid("stock_id", "el lote es requerido")
	case in.UsedQty <= 0:
		return nil, domain.Invalid("used_qty", "la cantidad debe ser mayor que 0")
	}

	batches, err := uc.backend.ListStock(ctx, s, productID)
	if err != nil {
		return nil, fmt.Errorf("usar stock: lotes: %w", err)
	}
	var target *entity.StockBatch
	for i := range batches {
		if batches[i].ID == stockID {
			target = &batches[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("lote %s: %w", stockID, domain.ErrNotFound)
	}
	if in.UsedQty > target.Qty {
		return nil, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, target.Qty, in.UsedQty)
	}

	if err := uc.backend.UseStock(ctx, s, productID, ports.UseStock{StockID: stockID, UsedQty: in.UsedQty}); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", s.UserID).Str("stock_id", stockID).Int("used_qty", in.UsedQty).Msg("stock consumido")
	return uc.ProductStock(ctx, s, productID)
}

// ValidateNewStock exige qty >= 1 y una fecha YYYY-MM-DD no anterior a hoy.
// Devuelve la fecha normalizada.
func ValidateNewStock(in dto.AddStockRequest, now time.Time) (string, error) {
	if in.Qty < 1 {
		return "", domain.Invalid("qty", "la cantidad mínima es 1")
	}
	raw := strings.TrimSpace(in.ExpiryDate)
	if raw == "" {
		return "", domain.Invalid("expiry_date", "la fecha de vencimiento es requerida")
	}
	expiry, err := time.ParseInLocation("2006-01-02", raw, now.Location())
	if err != nil {
		return "", domain.Invalid("expiry_date", "formato esperado YYYY-MM-DD")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if expiry.Before(today) {
		return "", domain.Invalid("expiry_date", "la fecha no puede ser anterior a hoy")
	}
	return expiry.Format("2006-01-02"), nil
}

func findProduct(products []entity.Product, id string) (entity.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.UnknownProduct(id), false
}

// expiryLess ordena por fecha ascendente; las fechas inválidas van al final.
func expiryLess(a, b entity.Date) bool {
	if a.Valid != b.Valid {
		return a.Valid
	}
	return a.Before(b)
}

// usageHistory todas las entradas de todos los lotes, la más reciente primero.
func usageHistory(batches []entity.StockBatch) []dto.UsageEntryResponse {
	type row struct {
		entry entity.StockEntry
		batch entity.StockBatch
	}
	var rows []row
	for _, b := range batches {
		for _, e := range b.Entries {
			rows = append(rows, row{entry: e, batch: b})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].entry.Time, rows[j].entry.Time
		if a.Valid != b.Valid {
			return a.Valid
		}
		return b.Before(a)
	})

	out := make([]dto.UsageEntryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.UsageEntryResponse{
			BatchID:     r.batch.ID,
			BatchExpiry: dto.DatePtr(r.batch.ExpiryDate),
			Type:        r.entry.Type,
			UsedQty:     r.entry.UsedQty,
			Time:        dto.DatePtr(r.entry.Time),
		})
	}
	return out
}
