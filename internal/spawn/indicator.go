package spawn

import (
	"log/slog"
	"math"

	"github.com/udisondev/soma/internal/model"
)

// IndicatorState описывает состояние индикатора предстоящего спавна.
type IndicatorState uint8

const (
	// IndicatorFadingIn: fade timer counts up to the fade duration.
	IndicatorFadingIn IndicatorState = iota
	// IndicatorActive: countdown runs; on expiry the indicator is either
	// blocked by the player and relocated, or starts fading out.
	IndicatorActive
	// IndicatorFadingOut: fade timer counts down to zero.
	IndicatorFadingOut
	// IndicatorResolved is terminal: the indicator becomes an enemy.
	IndicatorResolved
)

func (s IndicatorState) String() string {
	switch s {
	case IndicatorFadingIn:
		return "fading_in"
	case IndicatorActive:
		return "active"
	case IndicatorFadingOut:
		return "fading_out"
	case IndicatorResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Indicator is a timed placeholder shown before an enemy appears.
// It is owned by the Director until it resolves.
type Indicator struct {
	ID       uint32
	Position model.Vec2

	CountdownMs float64
	FadeMs      float64
	State       IndicatorState

	// PulsePhase in radians, [0, 2π). Presentation only.
	PulsePhase float64

	// Relocations counts how many times the player blocked this indicator.
	Relocations int
}

func newIndicator(id uint32, pos model.Vec2, countdownMs float64) *Indicator {
	return &Indicator{
		ID:          id,
		Position:    pos,
		CountdownMs: countdownMs,
		State:       IndicatorFadingIn,
	}
}

// Pending reports whether the indicator has not resolved yet.
func (ind *Indicator) Pending() bool { return ind.State != IndicatorResolved }

// Opacity returns the fade level in [0, 1] for rendering.
func (ind *Indicator) Opacity(fadeMs float64) float64 {
	switch ind.State {
	case IndicatorActive:
		return 1
	case IndicatorResolved:
		return 0
	}
	if fadeMs <= 0 {
		return 1
	}
	return model.Clamp01(ind.FadeMs / fadeMs)
}

// advance moves the indicator through its states by dtMs and reports whether
// it resolved. Leftover time carries into the next state, except after a
// blocked expiry: the relocated indicator restarts on the next frame.
func (d *Director) advance(ind *Indicator, dtMs float64, player model.Rect, bounds model.Bounds) bool {
	ind.PulsePhase = math.Mod(ind.PulsePhase+2*math.Pi*d.cfg.PulseHz*dtMs/1000, 2*math.Pi)

	remaining := dtMs
	for remaining > 0 {
		switch ind.State {
		case IndicatorFadingIn:
			need := d.cfg.FadeMs - ind.FadeMs
			if remaining < need {
				ind.FadeMs += remaining
				return false
			}
			remaining -= math.Max(0, need)
			ind.FadeMs = d.cfg.FadeMs
			ind.State = IndicatorActive

		case IndicatorActive:
			if remaining < ind.CountdownMs {
				ind.CountdownMs -= remaining
				return false
			}
			remaining -= ind.CountdownMs
			ind.CountdownMs = 0
			if player.IntersectsCircle(ind.Position, d.cfg.IndicatorRadius) {
				d.relocate(ind, player, bounds)
				return false
			}
			ind.State = IndicatorFadingOut

		case IndicatorFadingOut:
			if remaining < ind.FadeMs {
				ind.FadeMs -= remaining
				return false
			}
			ind.FadeMs = 0
			ind.State = IndicatorResolved
			return true

		case IndicatorResolved:
			return true
		}
	}
	return ind.State == IndicatorResolved
}

// relocate moves a blocked indicator and restarts it from fading in.
func (d *Director) relocate(ind *Indicator, player model.Rect, bounds model.Bounds) {
	from := ind.Position
	ind.Position = d.placeClear(player, bounds)
	ind.CountdownMs = d.cfg.CountdownMs
	ind.FadeMs = 0
	ind.State = IndicatorFadingIn
	ind.Relocations++

	slog.Debug("spawn indicator blocked by player",
		"indicatorID", ind.ID,
		"from", from,
		"to", ind.Position,
		"relocations", ind.Relocations)
}
