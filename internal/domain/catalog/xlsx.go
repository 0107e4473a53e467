package catalog

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Columnas que en la planilla vienen como lista separada por ";".
var listColumns = map[string]bool{
	"images":          true,
	"allergens":       true,
	"specialFeatures": true,
}

// Columnas que deben quedar como texto aunque parezcan números (p.ej. artículos 1C).
var textColumns = map[string]bool{
	"id":          true,
	"name":        true,
	"description": true,
	"brand":       true,
	"categoryId":  true,
}

// ReadXLSX lee la primera hoja de una planilla de precios exportada de 1C.
// La primera fila son los nombres de campo (como en el JSON del import).
// Las celdas se convierten a los tipos que espera FromRecord.
func ReadXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := Record{}
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			rec[header[i]] = cellValue(header[i], cell)
		}
		if len(rec) == 0 {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func cellValue(column, cell string) any {
	if listColumns[column] {
		parts := strings.Split(cell, ";")
		items := make([]any, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		return items
	}
	if textColumns[column] {
		return cell
	}
	// ParseBool acepta "1"/"0", que en una columna numérica son números.
	switch strings.ToLower(cell) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64); err == nil {
		return f
	}
	return cell
}
