package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/soma/internal/data"
)

// ConfigRepository reads configuration tables. Implements data.Source.
type ConfigRepository struct {
	pool *pgxpool.Pool
}

// NewConfigRepository creates a new config repository
func NewConfigRepository(pool *pgxpool.Pool) *ConfigRepository {
	return &ConfigRepository{pool: pool}
}

var _ data.Source = (*ConfigRepository)(nil)

// StatRows loads all stat definitions.
func (r *ConfigRepository) StatRows(ctx context.Context) ([]data.StatRow, error) {
	query := `
		SELECT key, category, sort_order, display_name, hide_in_panel,
		       description, is_percent, base_value, min_value, max_value, emoji
		FROM stat_definitions
		ORDER BY category, sort_order, key
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading stat definitions: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (data.StatRow, error) {
		var s data.StatRow
		err := row.Scan(
			&s.Key, &s.Category, &s.Order, &s.DisplayName, &s.HideInPanel,
			&s.Description, &s.IsPercent, &s.BaseValue, &s.MinValue, &s.MaxValue, &s.Emoji,
		)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning stat definitions: %w", err)
	}
	return out, nil
}

// BodyPartRows loads the body-part catalog. The stats column is JSONB
// keyed by stat key; a part whose stats do not decode to numbers is skipped.
func (r *ConfigRepository) BodyPartRows(ctx context.Context) ([]data.BodyPartRow, error) {
	query := `
		SELECT id, display_name, slot, image_ref, scale, stats
		FROM body_parts
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading body parts: %w", err)
	}
	defer rows.Close()

	var out []data.BodyPartRow
	for rows.Next() {
		var (
			p     data.BodyPartRow
			stats []byte
		)
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Type, &p.ImageRef, &p.Scale, &stats); err != nil {
			return nil, fmt.Errorf("scanning body part: %w", err)
		}
		if err := json.Unmarshal(stats, &p.Stats); err != nil {
			slog.Warn("skipping body part with malformed stats", "id", p.ID, "error", err)
			continue
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating body parts: %w", err)
	}
	return out, nil
}

// XPRows loads the experience table.
func (r *ConfigRepository) XPRows(ctx context.Context) ([]data.XPRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT level, xp_required, cumulative_xp FROM xp_levels ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("loading xp levels: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (data.XPRow, error) {
		var x data.XPRow
		err := row.Scan(&x.Level, &x.XPRequired, &x.CumulativeXP)
		return x, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning xp levels: %w", err)
	}
	return out, nil
}

// WaveRows loads wave durations.
func (r *ConfigRepository) WaveRows(ctx context.Context) ([]data.WaveRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT wave, duration_seconds FROM wave_timings ORDER BY wave`)
	if err != nil {
		return nil, fmt.Errorf("loading wave timings: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (data.WaveRow, error) {
		var w data.WaveRow
		err := row.Scan(&w.WaveIndex, &w.DurationSeconds)
		return w, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning wave timings: %w", err)
	}
	return out, nil
}
