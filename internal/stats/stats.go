package stats

import "github.com/vishwajitvm/tracenest/internal/model"

// Snapshot holds per-selection metrics for the active source.
// Recomputed from scratch on every fetch; the viewer has no streaming
// counters to maintain.
type Snapshot struct {
	Source          string              `json:"source"`
	TotalLines      int                 `json:"total_lines"`
	StructuredLines int                 `json:"structured_lines"`
	LevelCounts     map[model.Level]int `json:"level_counts"`
}

// Collect computes a Snapshot over one selection's classified records.
func Collect(source string, records []model.LogRecord) Snapshot {
	snap := Snapshot{
		Source:      source,
		TotalLines:  len(records),
		LevelCounts: make(map[model.Level]int, len(model.Levels)),
	}

	for _, rec := range records {
		snap.LevelCounts[rec.Level]++
		if rec.Structured {
			snap.StructuredLines++
		}
	}

	return snap
}
