package model

import "strings"

// Level is a canonical severity. These four values are the only ones used
// for filtering and display.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
	LevelDebug   Level = "debug"
)

// Levels lists the canonical severities in display order.
var Levels = []Level{LevelError, LevelWarning, LevelInfo, LevelDebug}

// ParseLevel maps user-facing level tokens onto a canonical Level.
// "warn" is accepted as an alias for "warning".
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return LevelError, true
	case "warn", "warning":
		return LevelWarning, true
	case "info":
		return LevelInfo, true
	case "debug":
		return LevelDebug, true
	}
	return "", false
}

// NoTimestamp is the sentinel shown when a line carries no recognizable timestamp.
const NoTimestamp = "—"

// DefaultEnvironment is assumed when a line names no environment.
const DefaultEnvironment = "local"

// LogRecord is a single classified log line.
// Produced fresh on every classification call and never mutated afterwards.
type LogRecord struct {
	Level       Level          `json:"level"`
	Timestamp   string         `json:"timestamp"`   // ISO-like string or NoTimestamp
	Environment string         `json:"environment"` // "local", "dev", "prod", ...
	Message     string         `json:"message"`
	Structured  bool           `json:"structured"`
	Raw         string         `json:"raw"`               // original line text, always kept
	Payload     map[string]any `json:"payload,omitempty"` // parsed object when structured
}

// SourceSelection holds the last fetched lines of the active source.
// Replaced wholesale on each successful fetch, never partially updated.
type SourceSelection struct {
	Name     string
	RawLines []string
}

// FilterState narrows the classified records of a selection.
// An empty ActiveLevels set matches every level; an empty SearchTerm
// matches every line. SearchTerm is stored lowercase.
type FilterState struct {
	ActiveLevels map[Level]bool
	SearchTerm   string
}

// PaginationState is the current page window. CurrentPage is 1-based.
type PaginationState struct {
	PageSize    int
	CurrentPage int
}
