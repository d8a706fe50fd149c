package entity

import "strings"

// Unidades de medida aceptadas para un producto.
const (
	MeasureKg     = "kg"
	MeasureG      = "g"
	MeasureL      = "l"
	MeasureML     = "ml"
	MeasurePcs    = "pcs"
	MeasureBox    = "box"
	MeasureBag    = "bag"
	MeasureBottle = "bottle"
	MeasureCan    = "can"
	MeasurePack   = "pack"
	MeasurePiece  = "piece"
	MeasureOther  = "other"

	DefaultMeasure = MeasureKg

	// MaxDescriptionLength límite de la descripción corta del producto (caracteres).
	MaxDescriptionLength = 20

	UnknownProductName = "Unknown Product"
)

// Measures en el orden en que se ofrecen en el formulario.
var Measures = []string{
	MeasureKg, MeasureG, MeasureL, MeasureML, MeasurePcs, MeasureBox,
	MeasureBag, MeasureBottle, MeasureCan, MeasurePack, MeasurePiece, MeasureOther,
}

// IsValidMeasure indica si m es una unidad de medida soportada.
func IsValidMeasure(m string) bool {
	for _, v := range Measures {
		if v == m {
			return true
		}
	}
	return false
}

// NormalizeMeasure pasa a minúsculas y aplica el valor por defecto si viene vacío.
func NormalizeMeasure(m string) string {
	m = strings.ToLower(strings.TrimSpace(m))
	if m == "" {
		return DefaultMeasure
	}
	return m
}

// Product producto del inventario. No se edita ni se elimina desde el dashboard.
type Product struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Measure     string `json:"measure"`
}

// UnknownProduct detalle usado cuando un lote referencia un producto que no vino en el listado.
func UnknownProduct(id string) Product {
	return Product{ID: id, Name: UnknownProductName}
}
