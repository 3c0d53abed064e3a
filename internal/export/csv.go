// Package export serializes generated rows to CSV files for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/tensorplex-labs/datasynth/internal/dataset"
)

// Header returns the declared names followed by any other keys found in rows,
// in first-seen order. Row map iteration order is random, so extra keys of a
// single row are sorted before being appended.
func Header(names []string, rows dataset.Result) []string {
	seen := make(map[string]struct{}, len(names))
	header := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		header = append(header, n)
	}
	for _, row := range rows {
		var extra []string
		for k := range row {
			if _, ok := seen[k]; !ok {
				extra = append(extra, k)
			}
		}
		if len(extra) == 0 {
			continue
		}
		slices.Sort(extra)
		for _, k := range extra {
			seen[k] = struct{}{}
			header = append(header, k)
		}
	}
	return header
}

// WriteCSV writes header then one record per row. Keys missing from a row are
// written as empty cells.
func WriteCSV(w io.Writer, header []string, rows dataset.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(header))
	for _, row := range rows {
		for i, col := range header {
			rec[i] = formatValue(row[col])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
