package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/restocker/internal/application/dto"
)

// row fila del CSV: un producto con un lote inicial opcional.
type row struct {
	Line    int
	Product dto.CreateProductRequest
	Stock   *dto.AddStockRequest
}

var requiredColumns = []string{"name", "measure"}

// parseRows lee el CSV (cabecera: name,description,measure,qty,expiry).
// qty y expiry son opcionales; si faltan no se crea lote.
// Las filas mal formadas se devuelven en skipped con el motivo.
func parseRows(r io.Reader, latin1 bool) (rows []row, skipped []string, err error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	reader := csv.NewReader(skipBOM(r))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("el CSV está vacío")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("leer cabecera: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped = append(skipped, fmt.Sprintf("línea %d: %v", perr.StartLine, perr.Err))
			} else {
				skipped = append(skipped, err.Error())
			}
			continue
		}
		// línea donde empieza el registro (un campo entre comillas puede ocupar varias)
		line, _ := reader.FieldPos(0)
		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		rw := row{Line: line, Product: dto.CreateProductRequest{
			Name:        get("name"),
			Description: get("description"),
			Measure:     get("measure"),
		}}
		if rw.Product.Name == "" {
			skipped = append(skipped, fmt.Sprintf("línea %d: nombre vacío", line))
			continue
		}
		if q := get("qty"); q != "" {
			qty, convErr := strconv.Atoi(q)
			if convErr != nil {
				skipped = append(skipped, fmt.Sprintf("línea %d: qty %q no es un entero", line, q))
				continue
			}
			rw.Stock = &dto.AddStockRequest{Qty: qty, ExpiryDate: get("expiry")}
		}
		rows = append(rows, rw)
	}
	return rows, skipped, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM descarta la marca BOM de UTF-8 si el archivo la trae.
func skipBOM(r io.Reader) io.Reader {
	buf := make([]byte, len(utf8BOM))
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return bytes.NewReader(buf[:n])
	}
	if bytes.Equal(buf, utf8BOM) {
		return r
	}
	return io.MultiReader(bytes.NewReader(buf), r)
}
