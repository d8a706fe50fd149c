package analytics

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/internal/domain/inventory"
)

// Pestañas del gráfico por producto.
const (
	TabStock = "stock"
	TabUsed  = "used"
)

const (
	noDataLabel     = "No Data"
	usedLabelLayout = "Jan 2, 03:04 PM"
)

// toneColors colores de punto por tono.
var toneColors = map[inventory.Tone]string{
	inventory.ToneRed:    "rgba(239, 68, 68, 1)",
	inventory.ToneYellow: "rgba(234, 179, 8, 1)",
	inventory.ToneOrange: "rgba(249, 115, 22, 1)",
	inventory.ToneGreen:  "rgba(34, 197, 94, 1)",
}

// BuildStockChart una etiqueta por producto ordenada por nombre (collation en inglés),
// valor = total, color de punto según el estado del grupo.
func BuildStockChart(groups []*inventory.ProductStockSummary) dto.ChartDTO {
	if len(groups) == 0 {
		return dto.ChartDTO{Labels: []string{}, Datasets: []dto.ChartDatasetDTO{}}
	}

	sorted := make([]*inventory.ProductStockSummary, len(groups))
	copy(sorted, groups)
	col := collate.New(language.English)
	sort.SliceStable(sorted, func(i, j int) bool {
		return col.CompareString(sorted[i].ProductName, sorted[j].ProductName) < 0
	})

	ds := dto.ChartDatasetDTO{
		Label:       "Stock Quantity",
		Data:        make([]int, 0, len(sorted)),
		PointColors: make([]string, 0, len(sorted)),
	}
	labels := make([]string, 0, len(sorted))
	for _, g := range sorted {
		labels = append(labels, g.ProductName)
		ds.Data = append(ds.Data, g.TotalQuantity)
		ds.PointColors = append(ds.PointColors, toneColors[inventory.ToneOf(inventory.Classify(g))])
	}
	return dto.ChartDTO{Labels: labels, Datasets: []dto.ChartDatasetDTO{ds}}
}

// BuildBatchChart un punto por lote en el orden del backend ("Batch N").
// Un lote con qty 0 usa la suma de sus entradas.
func BuildBatchChart(g *inventory.ProductStockSummary) dto.ChartDTO {
	labels := make([]string, 0, len(g.StockEntries))
	data := make([]int, 0, len(g.StockEntries))
	for i, b := range g.StockEntries {
		labels = append(labels, fmt.Sprintf("Batch %d", i+1))
		qty := b.Qty
		if qty == 0 && len(b.Entries) > 0 {
			qty = b.EntriesQty()
		}
		data = append(data, qty)
	}
	return dto.ChartDTO{
		Labels: labels,
		Datasets: []dto.ChartDatasetDTO{{
			Label: fmt.Sprintf("Stock Batches (%s)", g.ProductDetails.Measure),
			Data:  data,
		}},
	}
}

// BuildUsedChart entradas "sub" con fecha y cantidad positiva, en orden cronológico.
// Sin consumos devuelve una sola etiqueta "No Data" con valor 0.
func BuildUsedChart(g *inventory.ProductStockSummary) dto.ChartDTO {
	var used []entity.StockEntry
	for _, b := range g.StockEntries {
		for _, e := range b.Entries {
			if e.Type == entity.EntryTypeSub && e.Time.Valid && e.UsedQty > 0 {
				used = append(used, e)
			}
		}
	}
	sort.SliceStable(used, func(i, j int) bool { return used[i].Time.Before(used[j].Time) })

	labels := make([]string, 0, len(used))
	data := make([]int, 0, len(used))
	for _, e := range used {
		labels = append(labels, e.Time.Time.Format(usedLabelLayout))
		data = append(data, e.UsedQty)
	}
	if len(used) == 0 {
		labels = []string{noDataLabel}
		data = []int{0}
	}
	return dto.ChartDTO{
		Labels: labels,
		Datasets: []dto.ChartDatasetDTO{{
			Label: fmt.Sprintf("Used Quantity (%s)", g.ProductDetails.Measure),
			Data:  data,
		}},
	}
}
