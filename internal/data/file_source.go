package data

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File names looked up inside a FileSource directory.
const (
	StatsFile     = "stats.yaml"
	BodyPartsFile = "body_parts.yaml"
	XPFile        = "xp.yaml"
	WavesFile     = "waves.yaml"
)

// FileSource reads table rows from YAML files in Dir. Each file is a list
// of rows. A missing or unparsable file is reported as an error so the
// provider falls back to defaults for that table only; a single row that
// does not decode is logged and skipped.
type FileSource struct {
	Dir string
}

func readRows[T any](dir, name string) ([]T, error) {
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	list := doc.Content[0]
	if list.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("parsing %s: line %d: expected a list of rows", path, list.Line)
	}

	rows := make([]T, 0, len(list.Content))
	for i, node := range list.Content {
		var row T
		if err := node.Decode(&row); err != nil {
			slog.Warn("skipping malformed row",
				"file", path,
				"row", i,
				"line", node.Line,
				"error", err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s FileSource) StatRows(context.Context) ([]StatRow, error) {
	return readRows[StatRow](s.Dir, StatsFile)
}

func (s FileSource) BodyPartRows(context.Context) ([]BodyPartRow, error) {
	return readRows[BodyPartRow](s.Dir, BodyPartsFile)
}

func (s FileSource) XPRows(context.Context) ([]XPRow, error) {
	return readRows[XPRow](s.Dir, XPFile)
}

func (s FileSource) WaveRows(context.Context) ([]WaveRow, error) {
	return readRows[WaveRow](s.Dir, WavesFile)
}
