package data

import (
	"log/slog"
	"time"
)

// FallbackWaveSeconds is the duration of a wave missing from the table.
func FallbackWaveSeconds(wave int) int {
	return 30 + 5*wave
}

// WaveTable maps wave index (1-based) → duration.
type WaveTable struct {
	seconds map[int]int
}

// NewWaveTable builds a wave table; rows with wave < 1, non-positive
// duration or duplicate index are skipped.
func NewWaveTable(rows []WaveRow) *WaveTable {
	t := &WaveTable{seconds: make(map[int]int, len(rows))}
	for _, r := range rows {
		if r.WaveIndex < 1 || r.DurationSeconds <= 0 {
			slog.Warn("skipping wave row", "wave", r.WaveIndex, "duration", r.DurationSeconds)
			continue
		}
		if _, dup := t.seconds[r.WaveIndex]; dup {
			slog.Warn("skipping duplicate wave row", "wave", r.WaveIndex)
			continue
		}
		t.seconds[r.WaveIndex] = r.DurationSeconds
	}
	return t
}

// Duration returns the configured duration of wave, or the fallback.
func (t *WaveTable) Duration(wave int) time.Duration {
	return time.Duration(t.Seconds(wave)) * time.Second
}

// Seconds returns the duration of wave in whole seconds.
func (t *WaveTable) Seconds(wave int) int {
	if t != nil {
		if s, ok := t.seconds[wave]; ok {
			return s
		}
	}
	return FallbackWaveSeconds(wave)
}

// Has reports whether wave has an explicit row.
func (t *WaveTable) Has(wave int) bool {
	if t == nil {
		return false
	}
	_, ok := t.seconds[wave]
	return ok
}
