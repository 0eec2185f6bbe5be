package data

// Raw configuration records as delivered by a table source (YAML files,
// PostgreSQL, hard-coded defaults). Rows are validated one by one during
// ingestion; a bad row is logged and skipped, never fatal.

// StatRow is one row of the stat definition source.
type StatRow struct {
	Category    string   `yaml:"category"`
	Order       int      `yaml:"order"`
	Key         string   `yaml:"key"`
	DisplayName string   `yaml:"display_name"`
	HideInPanel bool     `yaml:"hide_in_panel"`
	Description string   `yaml:"description"`
	IsPercent   bool     `yaml:"is_percent"`
	BaseValue   float64  `yaml:"base_value"`
	MinValue    *float64 `yaml:"min_value"`
	MaxValue    *float64 `yaml:"max_value"`
	Emoji       string   `yaml:"emoji"`
}

// BodyPartRow is one row of the body-part (gear) catalog.
// Stats holds the stat columns keyed by stat key.
type BodyPartRow struct {
	ID          string             `yaml:"id"`
	DisplayName string             `yaml:"display_name"`
	Type        string             `yaml:"type"`
	ImageRef    string             `yaml:"image_ref"`
	Scale       float64            `yaml:"scale"`
	Stats       map[string]float64 `yaml:"stats"`
}

// XPRow is one row of the experience table.
type XPRow struct {
	Level        int   `yaml:"level"`
	XPRequired   int64 `yaml:"xp_required"`
	CumulativeXP int64 `yaml:"cumulative_xp"`
}

// WaveRow is one row of the wave timing table.
type WaveRow struct {
	WaveIndex       int `yaml:"wave"`
	DurationSeconds int `yaml:"duration_seconds"`
}
