// Package dataset defines the request schema and generated row types.
package dataset

type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeInteger ColumnType = "integer"
	TypeFloat   ColumnType = "float"
)

// Column describes one requested output column. Examples are optional
// few-shot values; when present the fallback samples from them.
type Column struct {
	Name     string     `json:"name"`
	Type     ColumnType `json:"type"`
	Examples []any      `json:"examples"`
}

type Request struct {
	Columns  []Column `json:"columns"`
	RowCount int      `json:"row_count"`
}

// Row maps column name to a scalar value.
type Row map[string]any

// Result is every row produced by a single generation call.
type Result []Row

// ColumnNames returns the column names in declared order.
func (r Request) ColumnNames() []string {
	names := make([]string, 0, len(r.Columns))
	for _, c := range r.Columns {
		names = append(names, c.Name)
	}
	return names
}

// HasAll reports whether the row has a key for every name.
func (r Row) HasAll(names []string) bool {
	for _, n := range names {
		if _, ok := r[n]; !ok {
			return false
		}
	}
	return true
}
