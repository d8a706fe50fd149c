package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/restocker/internal/application/inventory"
	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/application/ports/portstest"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var refNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func day(n int) entity.Date { return entity.NewDate(refNow.AddDate(0, 0, n)) }

func setup(t *testing.T) (*appinv.StockUseCase, *portstest.Backend, ports.Session) {
	t.Helper()
	be := portstest.New()
	be.Now = func() time.Time { return refNow }
	s := be.AddUser("u1", "Ana", "ana@example.com", "secret")
	be.SeedProduct("u1", entity.Product{ID: "P1", Name: "Leche", Measure: "l"})
	be.SeedBatch("u1", entity.StockBatch{ID: "s1", ProductID: "P1", Qty: 6, ExpiryDate: day(30),
		Entries: []entity.StockEntry{{Type: entity.EntryTypeAdd, UsedQty: 6, Time: day(-5)}}})
	be.SeedBatch("u1", entity.StockBatch{ID: "s2", ProductID: "P1", Qty: 3, ExpiryDate: day(2),
		Entries: []entity.StockEntry{
			{Type: entity.EntryTypeAdd, UsedQty: 5, Time: day(-3)},
			{Type: entity.EntryTypeSub, UsedQty: 2, Time: day(-1)},
		}})

	agg := inventory.NewAggregator(inventory.DefaultThresholds(), func() time.Time { return refNow })
	return appinv.NewStockUseCase(be, agg, nil), be, s
}

// ──────────────────────────────────────────────────────────────────────────────
// Página de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestProductStock_OrdenaPorVencimientoYCalculaTotal(t *testing.T) {
	uc, _, s := setup(t)

	page, err := uc.ProductStock(context.Background(), s, "P1")
	require.NoError(t, err)

	assert.Equal(t, "Leche", page.Product.Name)
	assert.Equal(t, 9, page.TotalQuantity)
	assert.Equal(t, string(inventory.StatusExpiringSoon), page.Status)
	require.Len(t, page.Batches, 2)
	assert.Equal(t, "s2", page.Batches[0].ID, "el lote que vence primero va primero")
	assert.Equal(t, string(inventory.StatusExpiringSoon), page.Batches[0].Status)
	assert.Equal(t, string(inventory.BatchStatusGood), page.Batches[1].Status)
}

func TestProductStock_HistorialMasRecientePrimero(t *testing.T) {
	uc, _, s := setup(t)

	page, err := uc.ProductStock(context.Background(), s, "P1")
	require.NoError(t, err)

	require.Len(t, page.Usage, 3)
	assert.Equal(t, entity.EntryTypeSub, page.Usage[0].Type)
	assert.Equal(t, "s2", page.Usage[0].BatchID)
	require.NotNil(t, page.Usage[0].BatchExpiry)
	assert.True(t, page.Usage[0].BatchExpiry.Equal(day(2).Time))
	assert.Equal(t, "s1", page.Usage[2].BatchID)
}

func TestProductStock_ProductoInexistente(t *testing.T) {
	uc, _, s := setup(t)

	_, err := uc.ProductStock(context.Background(), s, "PX")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_Valida(t *testing.T) {
	uc, be, s := setup(t)
	ctx := context.Background()

	_, err := uc.AddStock(ctx, s, "P1", dto.AddStockRequest{ExpiryDate: "2026-04-01", Qty: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "qty mínima 1")

	_, err = uc.AddStock(ctx, s, "P1", dto.AddStockRequest{ExpiryDate: "2026-03-09", Qty: 4})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ayer no es válido")

	_, err = uc.AddStock(ctx, s, "P1", dto.AddStockRequest{ExpiryDate: "01/04/2026", Qty: 4})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, be.Count("AddStock"), "la validación ocurre antes de llamar al backend")
}

func TestAddStock_HoyEsValido(t *testing.T) {
	uc, be, s := setup(t)

	page, err := uc.AddStock(context.Background(), s, "P1", dto.AddStockRequest{ExpiryDate: "2026-03-10", Qty: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, be.Count("AddStock"))
	assert.Equal(t, 13, page.TotalQuantity)
	assert.Equal(t, string(inventory.StatusExpired), page.Batches[0].Status,
		"vence a medianoche de hoy: ya pasó respecto a las 12:00")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo
// ──────────────────────────────────────────────────────────────────────────────

func TestUseStock_RechazaAntesDeModificar(t *testing.T) {
	uc, be, s := setup(t)
	ctx := context.Background()

	_, err := uc.UseStock(ctx, s, "P1", dto.UseStockRequest{StockID: "s2", UsedQty: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, be.Count("ListStock"), "cantidad no positiva: ninguna llamada de red")

	_, err = uc.UseStock(ctx, s, "P1", dto.UseStockRequest{StockID: "s2", UsedQty: 4})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.UseStock(ctx, s, "P1", dto.UseStockRequest{StockID: "nope", UsedQty: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, 0, be.Count("UseStock"))
}

func TestUseStock_DescuentaYRegistraEntrada(t *testing.T) {
	uc, be, s := setup(t)

	page, err := uc.UseStock(context.Background(), s, "P1", dto.UseStockRequest{StockID: "s2", UsedQty: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, be.Count("UseStock"))
	assert.Equal(t, 6, page.TotalQuantity)
	assert.Equal(t, 0, page.Batches[0].Qty)
	assert.Equal(t, entity.EntryTypeSub, page.Usage[0].Type)
	assert.Equal(t, 3, page.Usage[0].UsedQty)
}

func TestUseStock_PropagaCaidaDelBackend(t *testing.T) {
	uc, be, s := setup(t)
	be.Errs["ListStock"] = domain.ErrUnavailable

	_, err := uc.UseStock(context.Background(), s, "P1", dto.UseStockRequest{StockID: "s2", UsedQty: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))
}
