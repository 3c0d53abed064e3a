package generator

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tensorplex-labs/datasynth/internal/dataset"
)

// BuildPrompt renders the schema, any example values and the row count into
// the instruction sent to the model. Names and examples are embedded as given.
func BuildPrompt(columns []dataset.Column, rowCount int) string {
	var examples, instructions strings.Builder
	for _, col := range columns {
		if len(col.Examples) == 0 {
			continue
		}
		fmt.Fprintf(&examples, "Examples for %s: %s\n", col.Name, marshalOrSprint(col.Examples))

		values := make([]string, 0, len(col.Examples))
		for _, ex := range col.Examples {
			values = append(values, fmt.Sprint(ex))
		}
		fmt.Fprintf(&instructions, "- The %q column should contain values randomly selected from the examples: %s.\n",
			col.Name, strings.Join(values, ", "))
	}

	var b strings.Builder
	b.WriteString("Generate synthetic data in JSON format based on the following schema and examples.\n")
	b.WriteString("Schema: ")
	b.WriteString(schemaJSON(columns))
	b.WriteString("\n")
	b.WriteString(examples.String())
	fmt.Fprintf(&b, "Generate %d rows of data where:\n", rowCount)
	b.WriteString(instructions.String())
	b.WriteString("The output should be a JSON array of objects, each with the specified fields.")
	return b.String()
}

// schemaJSON renders {"name": "type", ...} in declared column order.
func schemaJSON(columns []dataset.Column) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(marshalOrSprint(col.Name))
		b.WriteString(": ")
		b.WriteString(marshalOrSprint(string(col.Type)))
	}
	b.WriteByte('}')
	return b.String()
}

func marshalOrSprint(v any) string {
	s, err := sonic.MarshalString(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
