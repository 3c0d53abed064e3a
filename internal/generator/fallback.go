package generator

import (
	"math"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/tensorplex-labs/datasynth/internal/dataset"
)

const (
	fallbackIntMin   = 1
	fallbackIntMax   = 1000
	fallbackFloatMin = 0
	fallbackFloatMax = 999.99
)

// Fallback synthesizes exactly req.RowCount rows locally. Columns with
// examples sample from them; otherwise the value depends on the declared
// type. Columns with an unrecognized type are left out of every row.
func Fallback(req dataset.Request, f *gofakeit.Faker) dataset.Result {
	n := max(req.RowCount, 0)
	rows := make(dataset.Result, 0, n)
	for range n {
		row := make(dataset.Row, len(req.Columns))
		for _, col := range req.Columns {
			if v, ok := fallbackValue(col, f); ok {
				row[col.Name] = v
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func fallbackValue(col dataset.Column, f *gofakeit.Faker) (any, bool) {
	if len(col.Examples) > 0 {
		return col.Examples[f.IntRange(0, len(col.Examples)-1)], true
	}
	switch col.Type {
	case dataset.TypeString:
		return f.Word(), true
	case dataset.TypeInteger:
		return f.IntRange(fallbackIntMin, fallbackIntMax), true
	case dataset.TypeFloat:
		return math.Round(f.Float64Range(fallbackFloatMin, fallbackFloatMax)*100) / 100, true
	}
	return nil, false
}

// FillEmpty replaces null or empty-string values of declared columns with
// synthesized ones. String columns whose name mentions "name" get a person name.
func FillEmpty(rows dataset.Result, columns []dataset.Column, f *gofakeit.Faker) int {
	filled := 0
	for _, row := range rows {
		for _, col := range columns {
			v, ok := row[col.Name]
			if !ok || !isEmptyValue(v) {
				continue
			}
			if col.Type == dataset.TypeString && len(col.Examples) == 0 &&
				strings.Contains(strings.ToLower(col.Name), "name") {
				row[col.Name] = f.Name()
				filled++
				continue
			}
			if nv, ok := fallbackValue(col, f); ok {
				row[col.Name] = nv
				filled++
			}
		}
	}
	return filled
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}
