package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	t.Run("formats sub-minute durations as seconds", func(t *testing.T) {
		assert.Equal(t, "0s", FormatDuration(0))
		assert.Equal(t, "45s", FormatDuration(45*time.Second))
		assert.Equal(t, "59s", FormatDuration(59*time.Second))
	})

	t.Run("formats sub-hour durations as minutes and seconds", func(t *testing.T) {
		assert.Equal(t, "1m 0s", FormatDuration(60*time.Second))
		assert.Equal(t, "1m 30s", FormatDuration(90*time.Second))
		assert.Equal(t, "59m 59s", FormatDuration(3599*time.Second))
	})

	t.Run("formats hour-plus durations with all components", func(t *testing.T) {
		assert.Equal(t, "1h 0m 0s", FormatDuration(time.Hour))
		assert.Equal(t, "1h 1m 1s", FormatDuration(3661*time.Second))
		assert.Equal(t, "2h 0m 0s", FormatDuration(2*time.Hour))
	})

	t.Run("truncates sub-second components", func(t *testing.T) {
		assert.Equal(t, "1s", FormatDuration(1500*time.Millisecond))
	})

	t.Run("clamps negative durations to zero", func(t *testing.T) {
		assert.Equal(t, "0s", FormatDuration(-5*time.Second))
	})
}

func TestSetVerbose(t *testing.T) {
	t.Run("debug output is gated by verbose flag", func(t *testing.T) {
		SetVerbose(false)
		assert.False(t, verbose)
		SetVerbose(true)
		assert.True(t, verbose)
		SetVerbose(false)
	})
}
