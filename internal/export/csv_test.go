package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorplex-labs/datasynth/internal/dataset"
)

func TestHeader(t *testing.T) {
	rows := dataset.Result{
		{"a": 1, "b": 2, "z": 1, "y": 2},
		{"a": 1, "b": 2, "x": 3, "y": 4},
	}
	assert.Equal(t, []string{"a", "b", "y", "z", "x"}, Header([]string{"a", "b"}, rows))
	assert.Equal(t, []string{"a", "b"}, Header([]string{"a", "b", "a"}, nil))
}

func TestWriteCSV(t *testing.T) {
	rows := dataset.Result{
		{"name": "Ada, Countess", "age": json.Number("36"), "score": 12.5, "ok": true},
		{"name": `say "hi"`, "age": 7, "ok": nil},
	}
	header := Header([]string{"name", "age", "score"}, rows)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, header, rows))

	want := "name,age,score,ok\n" +
		"\"Ada, Countess\",36,12.5,true\n" +
		"\"say \"\"hi\"\"\",7,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, Header([]string{"city"}, nil), nil))
	assert.Equal(t, "city\n", buf.String())
}
