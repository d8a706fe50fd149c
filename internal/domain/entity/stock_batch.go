package entity

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Tipos de entrada del historial de un lote.
const (
	EntryTypeAdd = "add"
	EntryTypeSub = "sub"
)

// StockEntry registro de auditoría de un cambio de cantidad sobre un lote (solo se agregan).
type StockEntry struct {
	Type    string `json:"type"`
	UsedQty int    `json:"usedQty"`
	Time    Date   `json:"time"`
}

// StockBatch lote de un producto con su propia fecha de vencimiento.
// ProductID se asigna al aplanar el listado agrupado que devuelve el backend.
type StockBatch struct {
	ID         string       `json:"_id"`
	ProductID  string       `json:"productId,omitempty"`
	ExpiryDate Date         `json:"expiryDate"`
	Qty        int          `json:"qty"`
	Entries    []StockEntry `json:"entry"`
}

// EntriesQty suma las cantidades de todas las entradas del lote.
func (b StockBatch) EntriesQty() int {
	total := 0
	for _, e := range b.Entries {
		total += e.UsedQty
	}
	return total
}

// dateLayouts formatos aceptados para fechas de vencimiento.
// Los formatos sin zona horaria se interpretan en UTC, no en hora local.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Date fecha de vencimiento tolerante a formatos.
// Un valor que no se puede interpretar queda con Valid=false en lugar de romper
// la decodificación del listado completo.
type Date struct {
	Time  time.Time
	Valid bool
	Raw   string
}

// NewDate construye una fecha válida.
func NewDate(t time.Time) Date {
	return Date{Time: t, Valid: true}
}

// ParseDate interpreta s con los formatos soportados.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t, Valid: true, Raw: s}
		}
	}
	return Date{Raw: s}
}

// UnmarshalJSON acepta string ISO, fecha simple o null.
func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*d = Date{Raw: string(b)}
		return nil
	}
	*d = ParseDate(s)
	return nil
}

// MarshalJSON serializa en RFC3339; una fecha inválida sale como null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.UTC().Format(time.RFC3339))
}

// Before compara dos fechas válidas; con alguna inválida devuelve false.
func (d Date) Before(other Date) bool {
	if !d.Valid || !other.Valid {
		return false
	}
	return d.Time.Before(other.Time)
}
