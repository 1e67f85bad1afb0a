package classify

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/vishwajitvm/tracenest/internal/model"
)

var (
	// Timestamp shapes like "2026-01-12 10:00:00" or "2026-01-12T10:00:00".
	timestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}`)

	// Bracketed environment tokens, e.g. "[prod]".
	environmentPattern = regexp.MustCompile(`(?i)\[(local|dev|production|prod|staging)\]`)
)

// Classify converts a raw log line into a LogRecord.
//
// It is total and deterministic: every line maps to exactly one record and
// repeated calls yield structurally equal results. Lines carrying an
// embedded JSON object (from the first "{" onward) are classified as
// structured; anything that fails to parse degrades to plain-text
// classification. Classify never fails.
func Classify(line string) model.LogRecord {
	if i := strings.IndexByte(line, '{'); i >= 0 {
		var payload map[string]any
		if err := json.Unmarshal([]byte(line[i:]), &payload); err == nil {
			return structured(line, payload)
		}
	}
	return plain(line)
}

// structured builds a record from a successfully parsed embedded object.
// Recognizes the tracenest.v1 field aliases: level, message/msg,
// timestamp/ts/time, env/environment.
func structured(line string, payload map[string]any) model.LogRecord {
	rec := model.LogRecord{
		Structured: true,
		Raw:        line,
		Payload:    payload,
	}

	if v, ok := strField(payload, "level"); ok {
		rec.Level = inferLevel(v)
	} else {
		rec.Level = inferLevel(line)
	}

	if v, ok := strField(payload, "timestamp", "ts", "time"); ok {
		rec.Timestamp = v
	} else {
		rec.Timestamp = findTimestamp(line)
	}

	if v, ok := strField(payload, "env", "environment"); ok {
		rec.Environment = v
	} else {
		rec.Environment = findEnvironment(line)
	}

	if v, ok := strField(payload, "message", "msg"); ok {
		rec.Message = v
	} else {
		rec.Message = line
	}

	return rec
}

// plain builds a record for a line with no usable embedded object.
func plain(line string) model.LogRecord {
	return model.LogRecord{
		Level:       inferLevel(line),
		Timestamp:   findTimestamp(line),
		Environment: findEnvironment(line),
		Message:     line,
		Structured:  false,
		Raw:         line,
	}
}

// inferLevel detects severity from keywords in the given text.
// Precedence is fixed: error > warn > debug, defaulting to info. The same
// rule normalizes explicit level fields, so "WARNING" and "warn" both map
// to the canonical "warning".
func inferLevel(text string) model.Level {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "error"):
		return model.LevelError
	case strings.Contains(lower, "warn"):
		return model.LevelWarning
	case strings.Contains(lower, "debug"):
		return model.LevelDebug
	default:
		return model.LevelInfo
	}
}

// findTimestamp returns the first timestamp-shaped substring of the line,
// or the sentinel when none exists.
func findTimestamp(line string) string {
	if m := timestampPattern.FindString(line); m != "" {
		return m
	}
	return model.NoTimestamp
}

// findEnvironment returns the first bracketed environment token of the
// line, lowercased, or the default environment.
func findEnvironment(line string) string {
	if m := environmentPattern.FindStringSubmatch(line); m != nil {
		return strings.ToLower(m[1])
	}
	return model.DefaultEnvironment
}

// strField returns the first non-empty value among the given keys,
// rendered as a string.
func strField(payload map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := payload[k]; ok {
			s := fmt.Sprintf("%v", v)
			if s != "" {
				return s, true
			}
		}
	}
	return "", false
}
