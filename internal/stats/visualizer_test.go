package stats

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestVisualizerOutput(t *testing.T) {
	color.NoColor = true

	db := newTestDatabase(t)
	failed := report("test.Broken", false)
	failed.Error = "mro conflict"
	db.RecordBuild(report("test.Document", true, "a.A", "b.B"))
	db.RecordBuild(failed)

	var buf bytes.Buffer
	v := NewVisualizer(db, &buf)

	v.ShowOverview()
	assert.Contains(t, buf.String(), "Build Statistics Overview")
	assert.Contains(t, buf.String(), "Total Builds")
	assert.Contains(t, buf.String(), "1 (50.0%)")

	buf.Reset()
	v.ShowTargets()
	assert.Contains(t, buf.String(), "test.Document")
	assert.Contains(t, buf.String(), "test.Broken")

	buf.Reset()
	v.ShowAdapters(0)
	assert.Contains(t, buf.String(), "a.A")

	buf.Reset()
	v.ShowRecentBuilds(5)
	assert.Contains(t, buf.String(), "Recent Builds (Last 2)")
	assert.Contains(t, buf.String(), "Synthesized")
	assert.Contains(t, buf.String(), "Error: mro conflict")
}

func TestVisualizerEmpty(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	v := NewVisualizer(newTestDatabase(t), &buf)

	v.ShowTargets()
	v.ShowAdapters(10)
	v.ShowRecentBuilds(10)

	assert.Contains(t, buf.String(), "No target data available.")
	assert.Contains(t, buf.String(), "No adapter data available.")
	assert.Contains(t, buf.String(), "No recent builds found.")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "-1,000", formatNumber(-1000))
	assert.Equal(t, "999", formatNumber(999))

	assert.Equal(t, "0s", formatDuration(0))
	assert.Equal(t, "500µs", formatDuration(500*time.Microsecond))
	assert.Equal(t, "15ms", formatDuration(15*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2.0m", formatDuration(2*time.Minute))

	assert.Equal(t, "N/A", formatTime(time.Time{}))
	assert.Equal(t, "Synthesized", statusLabel(StatusSynthesized))
	assert.Equal(t, "abc...", truncate("abcdefghij", 6))
}
