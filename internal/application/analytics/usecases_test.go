package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restocker/internal/application/analytics"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/application/ports/portstest"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeReport struct {
	got ports.StockReport
}

func (f *fakeReport) GenerateStockReport(_ context.Context, in ports.StockReport) ([]byte, error) {
	f.got = in
	return []byte("%PDF-fake"), nil
}

func fixture(t *testing.T) (*portstest.Backend, ports.Session, *inventory.Aggregator) {
	t.Helper()
	be := portstest.New()
	s := be.AddUser("u1", "Ana", "ana@example.com", "secret")
	be.SeedProduct("u1", entity.Product{ID: "P1", Name: "Leche", Measure: "l"})
	be.SeedProduct("u1", entity.Product{ID: "P2", Name: "Arroz", Measure: "kg"})
	be.SeedProduct("u1", entity.Product{ID: "P3", Name: "Huevos", Measure: "pcs"})
	be.SeedProduct("u1", entity.Product{ID: "P4", Name: "Sal", Measure: "kg"})
	be.SeedBatch("u1", entity.StockBatch{ID: "b1", ProductID: "P1", Qty: 5, ExpiryDate: day(-1)})
	be.SeedBatch("u1", entity.StockBatch{ID: "b2", ProductID: "P1", Qty: 3, ExpiryDate: day(30)})
	be.SeedBatch("u1", entity.StockBatch{ID: "b3", ProductID: "P2", Qty: 12, ExpiryDate: day(60)})
	be.SeedBatch("u1", entity.StockBatch{ID: "b4", ProductID: "P3", Qty: 4, ExpiryDate: day(3)})
	agg := inventory.NewAggregator(inventory.DefaultThresholds(), func() time.Time { return refNow })
	return be, s, agg
}

// ──────────────────────────────────────────────────────────────────────────────
// En stock
// ──────────────────────────────────────────────────────────────────────────────

func TestInStockList_FiltroYConteos(t *testing.T) {
	be, s, agg := fixture(t)
	uc := analytics.NewInStockUseCase(be, agg, nil)

	out, err := uc.List(context.Background(), s, "expiring")
	require.NoError(t, err)

	assert.Equal(t, "expiring", out.Filter)
	assert.Equal(t, 3, out.Counts.All)
	assert.Equal(t, 2, out.Counts.Expiring)
	assert.Equal(t, 2, out.Counts.LowStock)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "P1", out.Items[0].ProductID)
	assert.Equal(t, "Expired", out.Items[0].Status)
	assert.Equal(t, "P3", out.Items[1].ProductID)
	assert.Equal(t, "Expiring Soon", out.Items[1].Status)
}

func TestInStockList_FiltroInvalido(t *testing.T) {
	be, s, agg := fixture(t)
	uc := analytics.NewInStockUseCase(be, agg, nil)

	_, err := uc.List(context.Background(), s, "vencidos")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, be.Count("InStock"))
}

func TestProductChart_ProductoSinLotes(t *testing.T) {
	be, s, agg := fixture(t)
	uc := analytics.NewInStockUseCase(be, agg, nil)

	_, err := uc.ProductChart(context.Background(), s, "P4", "stock")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := uc.ProductChart(context.Background(), s, "P1", "")
	require.NoError(t, err)
	assert.Equal(t, analytics.TabStock, out.Tab)
	assert.Equal(t, 2, out.BatchCount)
	assert.Equal(t, 8, out.TotalQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard y reporte
// ──────────────────────────────────────────────────────────────────────────────

func TestOverview_ProductosSinStockYProximoVencimiento(t *testing.T) {
	be, s, agg := fixture(t)
	uc := analytics.NewDashboardUseCase(be, agg)

	out, err := uc.Overview(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalProducts)
	assert.Equal(t, 3, out.ProductsWithStock)
	assert.Equal(t, []string{"Sal"}, out.ProductsWithoutStock)
	assert.Equal(t, 24, out.TotalUnits)
	assert.Equal(t, 1, out.ExpiredProducts)
	require.NotNil(t, out.NextExpiry)
	assert.Equal(t, "P3", out.NextExpiry.ProductID)
	assert.Equal(t, 3, out.NextExpiry.DaysLeft)
}

func TestOverview_ErrorDelBackend(t *testing.T) {
	be, s, agg := fixture(t)
	be.Errs["InStock"] = domain.ErrUnavailable
	uc := analytics.NewDashboardUseCase(be, agg)

	_, err := uc.Overview(context.Background(), s)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestStockReport_FilasDeLaPestaña(t *testing.T) {
	be, s, agg := fixture(t)
	gen := &fakeReport{}
	uc := analytics.NewReportUseCase(analytics.NewInStockUseCase(be, agg, nil), gen)

	pdf, err := uc.StockReport(context.Background(), s, "ana@example.com", "low-stock")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))

	assert.Equal(t, "ana@example.com", gen.got.Owner)
	assert.Equal(t, "low-stock", gen.got.Filter)
	require.Len(t, gen.got.Rows, 2)
	assert.Equal(t, "Leche", gen.got.Rows[0].ProductName)
	assert.Equal(t, 2, gen.got.Rows[0].Batches)
	assert.Equal(t, "Huevos", gen.got.Rows[1].ProductName)
	assert.True(t, gen.got.GeneratedAt.Equal(refNow))
}
