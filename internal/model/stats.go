package model

import (
	"maps"

	"github.com/udisondev/soma/internal/data"
)

// StatDefinitions is the read side of data.StatTable.
type StatDefinitions interface {
	Definition(key string) (data.StatDefinition, bool)
	Definitions() []data.StatDefinition
}

// StatAggregator holds the base, level-up and gear layers of one character.
//
// Totals are recomputed from the layers on every read. Bounds and percent
// rounding apply only to the total; layer values are never clamped, so
// replacing the gear layer with its previous contents restores every total
// exactly.
type StatAggregator struct {
	defs    StatDefinitions
	base    map[string]float64
	levelUp map[string]float64
	gear    map[string]float64
}

// NewStatAggregator seeds the base layer from each definition's base value.
func NewStatAggregator(defs StatDefinitions) *StatAggregator {
	a := &StatAggregator{
		defs:    defs,
		base:    make(map[string]float64),
		levelUp: make(map[string]float64),
		gear:    make(map[string]float64),
	}
	if defs != nil {
		for _, d := range defs.Definitions() {
			a.base[d.Key] = d.BaseValue
		}
	}
	return a
}

// SetBase overwrites the base layer value of key.
func (a *StatAggregator) SetBase(key string, value float64) {
	a.base[key] = value
}

// AddBase adds delta to the base layer. Used for core stats (xp, level, hp).
func (a *StatAggregator) AddBase(key string, delta float64) {
	a.base[key] += delta
}

// AddLevelUp adds delta to the level-up layer.
func (a *StatAggregator) AddLevelUp(key string, delta float64) {
	a.levelUp[key] += delta
}

// ReplaceGear replaces the whole gear layer with a copy of totals.
func (a *StatAggregator) ReplaceGear(totals map[string]float64) {
	a.gear = make(map[string]float64, len(totals))
	maps.Copy(a.gear, totals)
}

// Base returns the raw base layer value.
func (a *StatAggregator) Base(key string) float64 { return a.base[key] }

// LevelUp returns the raw level-up layer value.
func (a *StatAggregator) LevelUp(key string) float64 { return a.levelUp[key] }

// Gear returns the raw gear layer value.
func (a *StatAggregator) Gear(key string) float64 { return a.gear[key] }

// Total returns clamp(base+levelUp+gear), rounded for percent stats.
// Core stats use the base layer only. Keys without a definition are summed
// without bounds.
func (a *StatAggregator) Total(key string) float64 {
	def, ok := a.definition(key)
	if ok && def.Category == data.CategoryCore {
		return def.Clamp(a.base[key])
	}
	sum := a.base[key] + a.levelUp[key] + a.gear[key]
	if !ok {
		return sum
	}
	return def.Clamp(sum)
}

// TotalsSnapshot returns totals for every defined key and every key present
// in any layer.
func (a *StatAggregator) TotalsSnapshot() map[string]float64 {
	out := make(map[string]float64, len(a.base))
	if a.defs != nil {
		for _, d := range a.defs.Definitions() {
			out[d.Key] = a.Total(d.Key)
		}
	}
	for _, layer := range []map[string]float64{a.base, a.levelUp, a.gear} {
		for k := range layer {
			if _, done := out[k]; !done {
				out[k] = a.Total(k)
			}
		}
	}
	return out
}

func (a *StatAggregator) definition(key string) (data.StatDefinition, bool) {
	if a.defs == nil {
		return data.StatDefinition{}, false
	}
	return a.defs.Definition(key)
}
