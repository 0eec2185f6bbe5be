package data

import (
	"log/slog"
	"math"
	"sort"
	"strings"
)

// BodyPart is an equippable part. Stats are its gear-layer contribution.
type BodyPart struct {
	ID          string
	DisplayName string
	Type        string
	ImageRef    string
	Scale       float64
	Stats       map[string]float64
}

// BodyPartCatalog indexes body parts by id.
type BodyPartCatalog struct {
	parts map[string]*BodyPart
}

// NormalizeSlot returns the canonical form of a slot name.
func NormalizeSlot(slot string) string {
	return strings.ToLower(strings.TrimSpace(slot))
}

// NewBodyPartCatalog builds the catalog. Rows without id or type and
// duplicates are skipped; stat columns that are NaN or name an unknown stat
// (when stats is non-nil) are dropped from the row.
func NewBodyPartCatalog(rows []BodyPartRow, stats *StatTable) *BodyPartCatalog {
	c := &BodyPartCatalog{parts: make(map[string]*BodyPart, len(rows))}
	for i, r := range rows {
		id := strings.TrimSpace(r.ID)
		typ := NormalizeSlot(r.Type)
		if id == "" || typ == "" {
			slog.Warn("skipping body part row: missing id or type", "row", i, "id", r.ID)
			continue
		}
		if _, dup := c.parts[id]; dup {
			slog.Warn("skipping duplicate body part row", "row", i, "id", id)
			continue
		}

		partStats := make(map[string]float64, len(r.Stats))
		for k, v := range r.Stats {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				slog.Warn("dropping body part stat: not a number", "id", id, "stat", k)
				continue
			}
			if stats != nil {
				def, ok := stats.Definition(k)
				if !ok {
					slog.Warn("dropping body part stat: unknown stat", "id", id, "stat", k)
					continue
				}
				if def.Category == CategoryCore {
					slog.Warn("dropping body part stat: core stats cannot be gear", "id", id, "stat", k)
					continue
				}
			}
			partStats[k] = v
		}

		scale := r.Scale
		if scale <= 0 || math.IsNaN(scale) {
			scale = 1
		}
		name := r.DisplayName
		if name == "" {
			name = id
		}
		c.parts[id] = &BodyPart{
			ID:          id,
			DisplayName: name,
			Type:        typ,
			ImageRef:    r.ImageRef,
			Scale:       scale,
			Stats:       partStats,
		}
	}
	return c
}

// Get returns a body part by id.
func (c *BodyPartCatalog) Get(id string) (*BodyPart, bool) {
	if c == nil {
		return nil, false
	}
	p, ok := c.parts[id]
	return p, ok
}

// Len returns number of parts in catalog.
func (c *BodyPartCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.parts)
}

// IDs returns all part ids sorted.
func (c *BodyPartCatalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.parts))
	for id := range c.parts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
