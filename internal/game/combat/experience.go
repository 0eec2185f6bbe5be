package combat

import (
	"log/slog"
	"math"

	"github.com/udisondev/soma/internal/data"
	"github.com/udisondev/soma/internal/model"
)

// LevelProgression maps cumulative XP to a level. *data.ExperienceTable
// satisfies it.
type LevelProgression interface {
	LevelFromCumulativeXP(xp int64) int
}

// MaxHPPerLevel is added to the level-up layer for every level gained.
const MaxHPPerLevel = 1

// CalcXPReward scales a kill's XP by the xpGain percent stat and rounds.
func CalcXPReward(xpValue int64, xpGainPercent float64) int64 {
	if xpValue <= 0 {
		return 0
	}
	return int64(math.Max(0, math.Round(float64(xpValue)*(1+xpGainPercent/100))))
}

// RewardExperience adds amount to the player's XP, recomputes the level from
// the progression table and returns the number of levels gained.
//
// Each level gained raises max HP by MaxHPPerLevel and heals the same amount.
func RewardExperience(player *model.Player, table LevelProgression, amount int64) int {
	if amount <= 0 || player.IsDead() {
		return 0
	}
	stats := player.Stats()
	stats.AddBase(data.StatXP, float64(amount))

	oldLevel := player.Level()
	newLevel := table.LevelFromCumulativeXP(player.XP())
	if newLevel <= oldLevel {
		return 0
	}

	gained := newLevel - oldLevel
	stats.SetBase(data.StatLevel, float64(newLevel))
	stats.AddLevelUp(data.StatMaxHP, float64(gained*MaxHPPerLevel))
	player.Heal(float64(gained * MaxHPPerLevel))

	slog.Debug("player leveled up",
		"oldLevel", oldLevel,
		"newLevel", newLevel,
		"xp", player.XP())

	return gained
}
