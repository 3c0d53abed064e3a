package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	beforeReq := testutil.ToFloat64(generateRequestsTotal.WithLabelValues("fallback"))
	beforeRows := testutil.ToFloat64(generateRowsTotal.WithLabelValues("fallback"))

	ObserveGeneration("fallback", 3, 25*time.Millisecond)

	assert.Equal(t, beforeReq+1, testutil.ToFloat64(generateRequestsTotal.WithLabelValues("fallback")))
	assert.Equal(t, beforeRows+3, testutil.ToFloat64(generateRowsTotal.WithLabelValues("fallback")))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(llmFailuresTotal)
	IncLLMFailure()
	assert.Equal(t, before+1, testutil.ToFloat64(llmFailuresTotal))

	swept := testutil.ToFloat64(tempFilesSweptTotal)
	AddTempFilesSwept(0)
	AddTempFilesSwept(-2)
	assert.Equal(t, swept, testutil.ToFloat64(tempFilesSweptTotal))
	AddTempFilesSwept(2)
	assert.Equal(t, swept+2, testutil.ToFloat64(tempFilesSweptTotal))
}
