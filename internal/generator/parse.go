package generator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tensorplex-labs/datasynth/internal/dataset"
)

var (
	ErrEmptyOutput      = errors.New("model output is empty")
	ErrNotJSONRows      = errors.New("model output is not a JSON object or array of objects")
	ErrMissingColumns   = errors.New("row is missing declared columns")
	ErrNonScalarValue   = errors.New("row value is not a scalar")
	codeFenceRe         = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*[ \t]*\r?\n?(.*?)\r?\n?```$")
	numberPreservingAPI = sonic.Config{UseNumber: true}.Froze()
)

// ParseRows decodes model output into rows. A single top-level object is a
// one-row batch. Every row must carry all names and only scalar values; the
// first violation rejects the whole batch.
func ParseRows(text string, names []string) (dataset.Result, error) {
	body := stripCodeFence(strings.TrimSpace(text))
	if body == "" {
		return nil, ErrEmptyOutput
	}

	var raw []any
	switch body[0] {
	case '{':
		var obj map[string]any
		if err := numberPreservingAPI.UnmarshalFromString(body, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotJSONRows, err)
		}
		raw = []any{obj}
	case '[':
		if err := numberPreservingAPI.UnmarshalFromString(body, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotJSONRows, err)
		}
	default:
		return nil, ErrNotJSONRows
	}

	rows := make(dataset.Result, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %T", ErrNotJSONRows, i, item)
		}
		row := dataset.Row(obj)
		if !row.HasAll(names) {
			return nil, fmt.Errorf("%w: row %d", ErrMissingColumns, i)
		}
		for k, v := range row {
			if !isScalar(v) {
				return nil, fmt.Errorf("%w: row %d column %q", ErrNonScalarValue, i, k)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func stripCodeFence(s string) string {
	if m := codeFenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

func isScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, json.Number, float64, int64, int:
		return true
	}
	return false
}
