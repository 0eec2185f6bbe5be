package data

import (
	"errors"
	"log/slog"
	"slices"
)

// MaxLevel bounds the upward level walk; the fallback curve makes reaching it
// require far more XP than an int64 counter sees in practice.
const MaxLevel = 10000

// FallbackXPRequired returns the XP needed to advance from level-1 to level
// when the table has no entry: (level+3)^2.
func FallbackXPRequired(level int) int64 {
	l := int64(level) + 3
	return l * l
}

type xpEntry struct {
	required   int64
	cumulative int64
}

// ExperienceTable maps level → cumulative XP requirement.
// Level 0 is the starting level and requires 0 XP.
type ExperienceTable struct {
	entries map[int]xpEntry
	// levels with an entry, ascending
	levels []int
}

// NewExperienceTable builds a table from rows. A row is skipped when its
// level is out of range or duplicated, its requirement is non-positive, or its
// cumulative value disagrees with cumulative(level-1) + requirement.
// Missing levels between rows are filled by the fallback formula.
func NewExperienceTable(rows []XPRow) (*ExperienceTable, error) {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b XPRow) int { return a.Level - b.Level })

	t := &ExperienceTable{entries: make(map[int]xpEntry, len(rows))}
	prevLevel, prevCumulative := 0, int64(0)
	for _, r := range sorted {
		if r.Level < 1 || r.Level > MaxLevel {
			slog.Warn("skipping xp row: level out of range", "level", r.Level)
			continue
		}
		if r.Level == prevLevel {
			slog.Warn("skipping duplicate xp row", "level", r.Level)
			continue
		}
		if r.XPRequired <= 0 {
			slog.Warn("skipping xp row: non-positive requirement", "level", r.Level, "xpRequired", r.XPRequired)
			continue
		}

		before := prevCumulative
		for l := prevLevel + 1; l < r.Level; l++ {
			before += FallbackXPRequired(l)
		}
		if r.CumulativeXP != before+r.XPRequired {
			slog.Warn("skipping xp row: cumulative mismatch",
				"level", r.Level,
				"cumulative", r.CumulativeXP,
				"expected", before+r.XPRequired)
			continue
		}

		t.entries[r.Level] = xpEntry{required: r.XPRequired, cumulative: r.CumulativeXP}
		t.levels = append(t.levels, r.Level)
		prevLevel, prevCumulative = r.Level, r.CumulativeXP
	}
	if len(rows) > 0 && len(t.entries) == 0 {
		return nil, errors.New("no valid xp rows")
	}
	return t, nil
}

// xpRequired returns the requirement for reaching level from level-1.
func (t *ExperienceTable) xpRequired(level int) int64 {
	if e, ok := t.entries[level]; ok {
		return e.required
	}
	return FallbackXPRequired(level)
}

// XPRequiredForNextLevel returns XP needed to go from currentLevel to currentLevel+1.
func (t *ExperienceTable) XPRequiredForNextLevel(currentLevel int) int64 {
	if currentLevel < 0 {
		currentLevel = 0
	}
	return t.xpRequired(currentLevel + 1)
}

// CumulativeXPForLevel returns the total XP at which level is reached.
func (t *ExperienceTable) CumulativeXPForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	if e, ok := t.entries[level]; ok {
		return e.cumulative
	}

	// Nearest tabulated level below, then running sum of fallback requirements.
	start, cumulative := 0, int64(0)
	if i, _ := slices.BinarySearch(t.levels, level); i > 0 {
		start = t.levels[i-1]
		cumulative = t.entries[start].cumulative
	}
	for l := start + 1; l <= level; l++ {
		cumulative += t.xpRequired(l)
	}
	return cumulative
}

// LevelFromCumulativeXP walks levels upward accumulating required XP until
// the next level's requirement would exceed xp, and returns the last fully
// satisfied level.
func (t *ExperienceTable) LevelFromCumulativeXP(xp int64) int {
	level := 0
	var acc int64
	for level < MaxLevel {
		next := acc + t.xpRequired(level+1)
		if next > xp {
			break
		}
		acc = next
		level++
	}
	return level
}

// ProgressWithinLevel returns progress toward level+1 in percent [0, 100].
func (t *ExperienceTable) ProgressWithinLevel(level int, xp int64) float64 {
	lo := t.CumulativeXPForLevel(level)
	hi := t.CumulativeXPForLevel(level + 1)
	span := hi - lo
	if span <= 0 {
		return 0
	}
	p := float64(xp-lo) / float64(span) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// FallbackMismatches reports tabulated levels whose requirement differs from
// the fallback formula. Cumulative mismatches are reported as well.
func (t *ExperienceTable) FallbackMismatches() []int {
	var bad []int
	var cumulative int64
	prev := 0
	for _, l := range t.levels {
		for g := prev + 1; g < l; g++ {
			cumulative += FallbackXPRequired(g)
		}
		cumulative += FallbackXPRequired(l)
		e := t.entries[l]
		if e.required != FallbackXPRequired(l) || e.cumulative != cumulative {
			bad = append(bad, l)
		}
		prev = l
	}
	return bad
}
