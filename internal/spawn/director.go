package spawn

import (
	"log/slog"

	"github.com/udisondev/soma/internal/model"
)

// Config содержит параметры директора спавна.
type Config struct {
	PollIntervalMs float64

	// BaseProbability is the per-poll spawn chance at or above target.
	BaseProbability float64
	// Boost is added to BaseProbability while below target.
	Boost float64
	// MissedSpawnIncrement is added to the catch-up bonus after each failed
	// roll at or above target.
	MissedSpawnIncrement float64

	TargetEnemyCount int

	CountdownMs float64
	FadeMs      float64
	PulseHz     float64

	IndicatorRadius      float64
	EdgeMargin           float64
	MaxPlacementAttempts int
	// MaxIndicators caps pending indicators. Zero means no cap.
	MaxIndicators int
}

// DefaultConfig returns the stock director tuning.
func DefaultConfig() Config {
	return Config{
		PollIntervalMs:       500,
		BaseProbability:      0.3,
		Boost:                0.4,
		MissedSpawnIncrement: 0.1,
		TargetEnemyCount:     8,
		CountdownMs:          1500,
		FadeMs:               250,
		PulseHz:              2,
		IndicatorRadius:      24,
		EdgeMargin:           32,
		MaxPlacementAttempts: 8,
		MaxIndicators:        32,
	}
}

// Promotion is an indicator that resolved into an enemy this frame.
type Promotion struct {
	IndicatorID uint32
	Position    model.Vec2
	Relocations int
}

// DebugInfo is the director state exposed for diagnostics.
type DebugInfo struct {
	ActiveIndicators   int
	CurrentProbability float64
	MissedSpawnBonus   float64
	TargetEnemyCount   int
	SpawnTimerMs       float64
}

// Director decides when new enemies appear.
//
// Every poll interval it compares the enemy census with the target count and
// rolls against an adaptive probability. Below target the probability is
// boosted; at or above target each failed roll raises a catch-up bonus that
// resets on the next success. Successful rolls create indicators, which
// resolve into enemies after their countdown unless the player stands on them.
//
// Director is not safe for concurrent use; one session owns it.
type Director struct {
	cfg Config
	rng model.RNG

	spawnTimerMs       float64
	baseProbability    float64
	currentProbability float64
	missedSpawnBonus   float64
	targetEnemyCount   int

	indicators []*Indicator
	nextID     uint32
}

// NewDirector creates a director. Probabilities are clamped to [0, 1].
func NewDirector(cfg Config, rng model.RNG) *Director {
	base := model.Clamp01(cfg.BaseProbability)
	return &Director{
		cfg:                cfg,
		rng:                rng,
		baseProbability:    base,
		currentProbability: base,
		targetEnemyCount:   max(0, cfg.TargetEnemyCount),
	}
}

// SetTargetEnemyCount changes the population the director aims for.
func (d *Director) SetTargetEnemyCount(n int) {
	d.targetEnemyCount = max(0, n)
}

// TargetEnemyCount returns the current target.
func (d *Director) TargetEnemyCount() int { return d.targetEnemyCount }

// CurrentProbability returns the chance used by the last poll.
func (d *Director) CurrentProbability() float64 { return d.currentProbability }

// MissedSpawnBonus returns the catch-up bonus.
func (d *Director) MissedSpawnBonus() float64 { return d.missedSpawnBonus }

// PendingCount returns the number of unresolved indicators.
func (d *Director) PendingCount() int { return len(d.indicators) }

// Update advances indicators and runs every poll interval covered by dtMs.
//
// liveEnemies is the number of living, non-dying enemies before this frame's
// promotions. player is the player's footprint after movement.
// Promotions are returned in creation order.
func (d *Director) Update(dtMs float64, liveEnemies int, player model.Rect, bounds model.Bounds) []Promotion {
	if dtMs <= 0 {
		return nil
	}

	var promoted []Promotion
	for _, ind := range d.indicators {
		if d.advance(ind, dtMs, player, bounds) {
			promoted = append(promoted, Promotion{
				IndicatorID: ind.ID,
				Position:    ind.Position,
				Relocations: ind.Relocations,
			})
		}
	}
	for i := len(d.indicators) - 1; i >= 0; i-- {
		if !d.indicators[i].Pending() {
			d.indicators = append(d.indicators[:i], d.indicators[i+1:]...)
		}
	}

	if d.cfg.PollIntervalMs <= 0 {
		return promoted
	}
	d.spawnTimerMs += dtMs
	for d.spawnTimerMs >= d.cfg.PollIntervalMs {
		d.spawnTimerMs -= d.cfg.PollIntervalMs
		// Promoted indicators become enemies this frame.
		d.poll(liveEnemies+len(promoted)+len(d.indicators), player, bounds)
	}
	return promoted
}

func (d *Director) poll(census int, player model.Rect, bounds model.Bounds) {
	belowTarget := census < d.targetEnemyCount
	if belowTarget {
		d.currentProbability = model.Clamp01(d.baseProbability + d.cfg.Boost)
		d.missedSpawnBonus = 0
	} else {
		d.currentProbability = model.Clamp01(d.baseProbability + d.missedSpawnBonus)
	}

	if d.cfg.MaxIndicators > 0 && len(d.indicators) >= d.cfg.MaxIndicators {
		return
	}

	if model.Roll(d.rng, d.currentProbability) {
		d.spawnIndicator(player, bounds)
		d.missedSpawnBonus = 0
		return
	}
	if !belowTarget {
		d.missedSpawnBonus = min(1, d.missedSpawnBonus+max(0, d.cfg.MissedSpawnIncrement))
	}
}

func (d *Director) spawnIndicator(player model.Rect, bounds model.Bounds) {
	d.nextID++
	ind := newIndicator(d.nextID, d.placeClear(player, bounds), d.cfg.CountdownMs)
	d.indicators = append(d.indicators, ind)

	slog.Debug("spawn indicator created",
		"indicatorID", ind.ID,
		"position", ind.Position,
		"probability", d.currentProbability,
		"pending", len(d.indicators))
}

// Cleanup drops all pending indicators and resets timers and the catch-up
// bonus. Called at wave boundaries.
func (d *Director) Cleanup() {
	dropped := len(d.indicators)
	d.indicators = nil
	d.spawnTimerMs = 0
	d.missedSpawnBonus = 0
	d.currentProbability = d.baseProbability

	if dropped > 0 {
		slog.Debug("spawn director cleaned up", "droppedIndicators", dropped)
	}
}

// Indicators returns copies of the pending indicators.
func (d *Director) Indicators() []Indicator {
	out := make([]Indicator, len(d.indicators))
	for i, ind := range d.indicators {
		out[i] = *ind
	}
	return out
}

// Debug returns a diagnostics snapshot.
func (d *Director) Debug() DebugInfo {
	return DebugInfo{
		ActiveIndicators:   len(d.indicators),
		CurrentProbability: d.currentProbability,
		MissedSpawnBonus:   d.missedSpawnBonus,
		TargetEnemyCount:   d.targetEnemyCount,
		SpawnTimerMs:       d.spawnTimerMs,
	}
}
