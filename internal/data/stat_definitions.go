package data

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
)

// StatCategory groups stats for display and for layering rules.
type StatCategory uint8

const (
	CategoryPrimary StatCategory = iota
	CategorySecondary
	// CategoryCore stats (level, current HP, XP) are mutated directly and
	// never composed from layers.
	CategoryCore
)

// String returns the config spelling of the category.
func (c StatCategory) String() string {
	switch c {
	case CategoryPrimary:
		return "primary"
	case CategorySecondary:
		return "secondary"
	case CategoryCore:
		return "core"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// ParseStatCategory parses a category name (case-insensitive).
func ParseStatCategory(s string) (StatCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary":
		return CategoryPrimary, nil
	case "secondary":
		return CategorySecondary, nil
	case "core":
		return CategoryCore, nil
	default:
		return 0, fmt.Errorf("unknown stat category %q", s)
	}
}

// StatDefinition describes one stat. Immutable once loaded.
type StatDefinition struct {
	Key         string
	Category    StatCategory
	Order       int
	DisplayName string
	HideInPanel bool
	Description string
	IsPercent   bool
	BaseValue   float64
	MinValue    *float64
	MaxValue    *float64
	Emoji       string
}

// Clamp applies the definition bounds and, for percent stats, integer rounding.
func (d StatDefinition) Clamp(v float64) float64 {
	if d.MinValue != nil && v < *d.MinValue {
		v = *d.MinValue
	}
	if d.MaxValue != nil && v > *d.MaxValue {
		v = *d.MaxValue
	}
	if d.IsPercent {
		v = math.Round(v)
	}
	return v
}

// StatTable is the immutable catalog of stat definitions.
type StatTable struct {
	defs  map[string]StatDefinition
	order []string
}

// Definition returns the definition for key.
func (t *StatTable) Definition(key string) (StatDefinition, bool) {
	if t == nil {
		return StatDefinition{}, false
	}
	d, ok := t.defs[key]
	return d, ok
}

// Definitions returns all definitions ordered by category, order, key.
func (t *StatTable) Definitions() []StatDefinition {
	if t == nil {
		return nil
	}
	out := make([]StatDefinition, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.defs[k])
	}
	return out
}

// Len returns number of definitions.
func (t *StatTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.defs)
}

var errEmptyStatKey = errors.New("empty stat key")

// statFromRow validates a single row.
func statFromRow(r StatRow) (StatDefinition, error) {
	key := strings.TrimSpace(r.Key)
	if key == "" {
		return StatDefinition{}, errEmptyStatKey
	}
	cat, err := ParseStatCategory(r.Category)
	if err != nil {
		return StatDefinition{}, err
	}
	if math.IsNaN(r.BaseValue) {
		return StatDefinition{}, fmt.Errorf("stat %q: base value is NaN", key)
	}
	if r.MinValue != nil && r.MaxValue != nil && *r.MinValue > *r.MaxValue {
		return StatDefinition{}, fmt.Errorf("stat %q: min %v > max %v", key, *r.MinValue, *r.MaxValue)
	}
	display := r.DisplayName
	if display == "" {
		display = key
	}
	return StatDefinition{
		Key:         key,
		Category:    cat,
		Order:       r.Order,
		DisplayName: display,
		HideInPanel: r.HideInPanel,
		Description: r.Description,
		IsPercent:   r.IsPercent,
		BaseValue:   r.BaseValue,
		MinValue:    copyFloat(r.MinValue),
		MaxValue:    copyFloat(r.MaxValue),
		Emoji:       r.Emoji,
	}, nil
}

// NewStatTable builds a table from rows. Malformed rows and duplicate keys
// are skipped individually. Returns an error only when no row survived.
func NewStatTable(rows []StatRow) (*StatTable, error) {
	t := &StatTable{defs: make(map[string]StatDefinition, len(rows))}
	for i, r := range rows {
		def, err := statFromRow(r)
		if err != nil {
			slog.Warn("skipping stat row", "row", i, "key", r.Key, "error", err)
			continue
		}
		if _, dup := t.defs[def.Key]; dup {
			slog.Warn("skipping duplicate stat row", "row", i, "key", def.Key)
			continue
		}
		t.defs[def.Key] = def
		t.order = append(t.order, def.Key)
	}
	if len(t.defs) == 0 {
		return nil, errors.New("no valid stat definitions")
	}

	t.sortOrder()
	return t, nil
}

func (t *StatTable) sortOrder() {
	slices.SortStableFunc(t.order, func(a, b string) int {
		da, db := t.defs[a], t.defs[b]
		if da.Category != db.Category {
			return int(da.Category) - int(db.Category)
		}
		if da.Order != db.Order {
			return da.Order - db.Order
		}
		return strings.Compare(a, b)
	})
}

// withMissing returns t extended with every definition of fallback whose key
// t lacks. The simulation reads core keys (level, HP, XP) unconditionally.
func (t *StatTable) withMissing(fallback *StatTable) *StatTable {
	var missing []string
	for _, k := range fallback.order {
		if _, ok := t.defs[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return t
	}
	slog.Warn("stat table missing keys, adding defaults", "keys", missing)

	out := &StatTable{defs: make(map[string]StatDefinition, len(t.defs)+len(missing))}
	for _, k := range t.order {
		out.defs[k] = t.defs[k]
	}
	for _, k := range missing {
		out.defs[k] = fallback.defs[k]
	}
	out.order = append(slices.Clone(t.order), missing...)
	out.sortOrder()
	return out
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
