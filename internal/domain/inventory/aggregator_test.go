package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var refNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func batch(id, productID string, qty int, expiry time.Time) entity.StockBatch {
	return entity.StockBatch{ID: id, ProductID: productID, Qty: qty, ExpiryDate: entity.NewDate(expiry)}
}

func days(n int) time.Time { return refNow.Add(time.Duration(n) * 24 * time.Hour) }

var testProducts = []entity.Product{
	{ID: "P1", Name: "Leche", Description: "entera", Measure: "l"},
	{ID: "P2", Name: "Arroz", Description: "blanco", Measure: "kg"},
	{ID: "P3", Name: "Huevos", Description: "AA", Measure: "pcs"},
}

func aggregate(batches ...entity.StockBatch) *inventory.Aggregation {
	return inventory.AggregateAt(batches, testProducts, refNow, inventory.DefaultThresholds())
}

// ──────────────────────────────────────────────────────────────────────────────
// Ejemplos de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_LoteVencidoMarcaProductoVencido(t *testing.T) {
	agg := aggregate(
		batch("b1", "P1", 5, days(-1)),
		batch("b2", "P1", 3, days(30)),
	)

	g, ok := agg.Get("P1")
	require.True(t, ok)
	assert.Equal(t, 8, g.TotalQuantity)
	assert.True(t, g.HasExpired)
	assert.True(t, g.IsLowStock)
	assert.Equal(t, inventory.StatusExpired, inventory.Classify(g), "Expired tiene precedencia sobre Low Stock")
}

func TestAggregate_StockSuficienteEsInStock(t *testing.T) {
	agg := aggregate(batch("b1", "P2", 12, days(60)))

	g, ok := agg.Get("P2")
	require.True(t, ok)
	assert.Equal(t, 12, g.TotalQuantity)
	assert.False(t, g.IsLowStock)
	assert.False(t, g.HasExpired)
	assert.False(t, g.HasExpiringSoon)
	assert.Equal(t, inventory.StatusInStock, inventory.Classify(g))
}

func TestAggregate_PorVencerTienePrecedenciaSobreStockBajo(t *testing.T) {
	agg := aggregate(batch("b1", "P3", 4, days(3)))

	g, ok := agg.Get("P3")
	require.True(t, ok)
	assert.True(t, g.HasExpiringSoon)
	assert.True(t, g.IsLowStock)
	assert.Equal(t, inventory.StatusExpiringSoon, inventory.Classify(g))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_SumaDeTotalesIgualSumaDeLotes(t *testing.T) {
	batches := []entity.StockBatch{
		batch("b1", "P1", 5, days(2)),
		batch("b2", "P2", 7, days(40)),
		batch("b3", "P1", 0, days(-5)),
		batch("b4", "P3", 21, days(9)),
		batch("b5", "P2", 1, days(1)),
	}
	agg := aggregate(batches...)

	want := 0
	for _, b := range batches {
		want += b.Qty
	}
	got := 0
	for _, g := range agg.Groups() {
		got += g.TotalQuantity
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 3, agg.Len())
}

func TestAggregate_EarliestExpiryEsElMinimo(t *testing.T) {
	agg := aggregate(
		batch("b1", "P1", 1, days(20)),
		batch("b2", "P1", 1, days(4)),
		batch("b3", "P1", 1, days(11)),
	)

	g, _ := agg.Get("P1")
	require.NotNil(t, g.EarliestExpiry)
	assert.True(t, g.EarliestExpiry.Equal(days(4)))
}

func TestAggregate_VencidoSoloSiEsEstrictamenteAnterior(t *testing.T) {
	agg := aggregate(batch("b1", "P1", 50, refNow))

	g, _ := agg.Get("P1")
	assert.False(t, g.HasExpired, "vence exactamente ahora: todavía no está vencido")
	assert.True(t, g.HasExpiringSoon)
}

func TestAggregate_LimiteDeStockBajo(t *testing.T) {
	agg := aggregate(
		batch("b1", "P1", 10, days(100)),
		batch("b2", "P2", 11, days(100)),
	)

	low, _ := agg.Get("P1")
	notLow, _ := agg.Get("P2")
	assert.True(t, low.IsLowStock, "10 → stock bajo")
	assert.False(t, notLow.IsLowStock, "11 → no es stock bajo")
}

func TestAggregate_VentanaPorVencerInclusiva(t *testing.T) {
	agg := aggregate(
		batch("b1", "P1", 50, days(7)),
		batch("b2", "P2", 50, days(7).Add(time.Minute)),
	)

	inside, _ := agg.Get("P1")
	outside, _ := agg.Get("P2")
	assert.True(t, inside.HasExpiringSoon, "a 7 días exactos está dentro de la ventana")
	assert.False(t, outside.HasExpiringSoon, "7 días y un minuto redondea a 8")
}

func TestAggregate_VencidoNoCuentaComoPorVencer(t *testing.T) {
	agg := aggregate(batch("b1", "P1", 50, refNow.Add(-time.Hour)))

	g, _ := agg.Get("P1")
	assert.True(t, g.HasExpired)
	assert.False(t, g.HasExpiringSoon)
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos borde
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_ProductoSinLotesNoAparece(t *testing.T) {
	agg := aggregate(batch("b1", "P1", 3, days(10)))

	_, ok := agg.Get("P2")
	assert.False(t, ok)
	assert.Equal(t, 1, agg.Len())
}

func TestAggregate_ProductoDesconocido(t *testing.T) {
	agg := aggregate(batch("b1", "PX", 3, days(10)))

	g, ok := agg.Get("PX")
	require.True(t, ok)
	assert.Equal(t, entity.UnknownProductName, g.ProductName)
	assert.Equal(t, "", g.ProductDetails.Measure)
}

func TestAggregate_ConservaOrdenDeAparicion(t *testing.T) {
	agg := aggregate(
		batch("b1", "P3", 1, days(10)),
		batch("b2", "P1", 1, days(10)),
		batch("b3", "P3", 1, days(10)),
		batch("b4", "P2", 1, days(10)),
	)

	var ids []string
	for _, g := range agg.Groups() {
		ids = append(ids, g.ProductID)
	}
	assert.Equal(t, []string{"P3", "P1", "P2"}, ids)

	g, _ := agg.Get("P3")
	require.Len(t, g.StockEntries, 2)
	assert.Equal(t, "b1", g.StockEntries[0].ID)
	assert.Equal(t, "b3", g.StockEntries[1].ID)
}

func TestAggregate_FechaInvalidaNoVenceNiFijaEarliest(t *testing.T) {
	bad := entity.StockBatch{ID: "b1", ProductID: "P1", Qty: 30, ExpiryDate: entity.ParseDate("no-es-fecha")}
	agg := aggregate(bad, batch("b2", "P1", 1, days(50)))

	g, _ := agg.Get("P1")
	assert.Equal(t, 31, g.TotalQuantity)
	assert.False(t, g.HasExpired)
	assert.False(t, g.HasExpiringSoon)
	require.NotNil(t, g.EarliestExpiry)
	assert.True(t, g.EarliestExpiry.Equal(days(50)))
}

func TestAggregate_UmbralesConfigurables(t *testing.T) {
	th := inventory.Thresholds{LowStock: 20, BatchLowQty: 2, ExpiringSoonDays: 30}
	agg := inventory.AggregateAt([]entity.StockBatch{batch("b1", "P1", 15, days(25))}, testProducts, refNow, th)

	g, _ := agg.Get("P1")
	assert.True(t, g.IsLowStock)
	assert.True(t, g.HasExpiringSoon)
}

func TestAggregator_UsaElRelojInyectado(t *testing.T) {
	a := inventory.NewAggregator(inventory.DefaultThresholds(), func() time.Time { return refNow })

	agg := a.Aggregate([]entity.StockBatch{batch("b1", "P1", 40, days(-1))}, testProducts)
	g, _ := agg.Get("P1")
	assert.True(t, g.HasExpired)
	assert.True(t, agg.Now.Equal(refNow))
}

func TestParseDate_Formatos(t *testing.T) {
	assert.True(t, entity.ParseDate("2026-03-10").Valid)
	assert.True(t, entity.ParseDate("2026-03-10T00:00:00.000Z").Valid)
	assert.True(t, entity.ParseDate("2026-03-10T08:30:00Z").Valid)
	assert.False(t, entity.ParseDate("10/03/2026").Valid)
}

func TestParseDate_SinZonaSeInterpretaEnUTC(t *testing.T) {
	d := entity.ParseDate("2026-03-10T08:30:00")
	require.True(t, d.Valid)
	assert.Equal(t, time.UTC, d.Time.Location())
	assert.True(t, d.Time.Equal(time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)))
}
