package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_Snapshot(t *testing.T) {
	r := NewRecorder()
	for i := 1; i <= 100; i++ {
		r.Record("GET", "/things", time.Duration(i)*time.Millisecond)
	}

	stats := r.Snapshot()
	assert.Equal(t, int64(100), stats.Count)
	assert.InDelta(t, 50*time.Millisecond, stats.P50, float64(2*time.Millisecond))
	assert.InDelta(t, 95*time.Millisecond, stats.P95, float64(2*time.Millisecond))
	assert.InDelta(t, 100*time.Millisecond, stats.Max, float64(2*time.Millisecond))
	assert.Greater(t, stats.Mean, time.Duration(0))
}

func TestRecorder_Routes(t *testing.T) {
	r := NewRecorder()
	r.Record("GET", "/a", 5*time.Millisecond)
	r.Record("GET", "/a", 7*time.Millisecond)
	r.Record("POST", "/b", 9*time.Millisecond)

	routes := r.Routes()
	assert.Len(t, routes, 2)
	assert.Equal(t, int64(2), routes["GET /a"].Count)
	assert.Equal(t, int64(1), routes["POST /b"].Count)
}

func TestRecorder_SubMicrosecondLatencyStillCounts(t *testing.T) {
	r := NewRecorder()
	r.Record("GET", "/fast", 100*time.Nanosecond)

	assert.Equal(t, int64(1), r.Snapshot().Count)
}
