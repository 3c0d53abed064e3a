package generator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tensorplex-labs/datasynth/internal/dataset"
)

func TestBuildPrompt(t *testing.T) {
	columns := []dataset.Column{
		{Name: "city", Type: dataset.TypeString, Examples: []any{"NYC", "LA"}},
		{Name: "age", Type: dataset.TypeInteger},
		{Name: "score", Type: dataset.TypeFloat, Examples: []any{json.Number("1.5"), json.Number("2")}},
	}

	got := BuildPrompt(columns, 3)
	want := "Generate synthetic data in JSON format based on the following schema and examples.\n" +
		`Schema: {"city": "string", "age": "integer", "score": "float"}` + "\n" +
		`Examples for city: ["NYC","LA"]` + "\n" +
		`Examples for score: [1.5,2]` + "\n" +
		"Generate 3 rows of data where:\n" +
		`- The "city" column should contain values randomly selected from the examples: NYC, LA.` + "\n" +
		`- The "score" column should contain values randomly selected from the examples: 1.5, 2.` + "\n" +
		"The output should be a JSON array of objects, each with the specified fields."
	assert.Equal(t, want, got)
}

func TestBuildPrompt_NoExamples(t *testing.T) {
	got := BuildPrompt([]dataset.Column{{Name: "id", Type: dataset.TypeInteger}}, 0)
	assert.Contains(t, got, `Schema: {"id": "integer"}`)
	assert.Contains(t, got, "Generate 0 rows of data where:\nThe output should be")
	assert.NotContains(t, got, "Examples for")
}
