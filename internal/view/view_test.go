package view

import (
	"fmt"
	"testing"

	"github.com/vishwajitvm/tracenest/internal/classify"
	"github.com/vishwajitvm/tracenest/internal/model"
)

func classifyAll(lines []string) []model.LogRecord {
	records := make([]model.LogRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, classify.Classify(line))
	}
	return records
}

func TestFilterIdentity(t *testing.T) {
	records := classifyAll([]string{
		"ERROR payment failed",
		"WARN cache miss",
		"plain info line",
		"DEBUG verbose",
	})

	got := Filter(records, model.FilterState{})

	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range got {
		if got[i].Raw != records[i].Raw {
			t.Errorf("record %d reordered: %q vs %q", i, got[i].Raw, records[i].Raw)
		}
	}
}

func TestFilterByLevel(t *testing.T) {
	records := classifyAll([]string{
		"ERROR payment failed",
		"WARN cache miss",
		"plain info line",
		"ERROR timeout",
	})

	state := model.FilterState{ActiveLevels: map[model.Level]bool{model.LevelError: true}}
	got := Filter(records, state)

	if len(got) != 2 {
		t.Fatalf("expected 2 error records, got %d", len(got))
	}
	for _, rec := range got {
		if rec.Level != model.LevelError {
			t.Errorf("unexpected level %s", rec.Level)
		}
	}
}

func TestFilterBySearch(t *testing.T) {
	records := classifyAll([]string{
		"ERROR Payment failed",
		"WARN cache miss",
		`{"level":"info","message":"payment received"}`,
	})

	got := Filter(records, model.FilterState{SearchTerm: "payment"})

	// Case-insensitive substring over the raw line, so both the plain line
	// and the structured payload match.
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].Raw != "ERROR Payment failed" {
		t.Errorf("expected order preserved, got %q first", got[0].Raw)
	}
}

func TestFilterCombined(t *testing.T) {
	records := classifyAll([]string{
		"ERROR payment failed",
		"ERROR disk full",
		"WARN payment slow",
		"INFO payment received",
	})

	state := model.FilterState{
		ActiveLevels: map[model.Level]bool{model.LevelError: true},
		SearchTerm:   "payment",
	}
	got := Filter(records, state)

	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	if got[0].Raw != "ERROR payment failed" {
		t.Errorf("unexpected match %q", got[0].Raw)
	}
}

func TestPaginateArithmetic(t *testing.T) {
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	records := classifyAll(lines)

	var tests = []struct {
		page     int
		wantLen  int
		wantFrom string
	}{
		{1, 50, "line 0"},
		{2, 50, "line 50"},
		{3, 20, "line 100"},
	}

	for _, tt := range tests {
		pg := Paginate(records, tt.page, 50)
		if pg.TotalPages != 3 {
			t.Errorf("page %d: expected 3 total pages, got %d", tt.page, pg.TotalPages)
		}
		if len(pg.Records) != tt.wantLen {
			t.Errorf("page %d: expected %d records, got %d", tt.page, tt.wantLen, len(pg.Records))
		}
		if pg.Records[0].Raw != tt.wantFrom {
			t.Errorf("page %d: expected first record %q, got %q", tt.page, tt.wantFrom, pg.Records[0].Raw)
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	pg := Paginate(nil, 1, 50)

	if pg.TotalPages != 1 {
		t.Errorf("expected 1 total page for empty input, got %d", pg.TotalPages)
	}
	if len(pg.Records) != 0 {
		t.Errorf("expected empty slice, got %d records", len(pg.Records))
	}
}

func TestPaginateNonPositivePage(t *testing.T) {
	records := classifyAll([]string{"a", "b"})

	// Out-of-contract page numbers must degrade to an empty slice, never panic.
	for _, page := range []int{0, -1, -7} {
		pg := Paginate(records, page, 50)
		if len(pg.Records) != 0 {
			t.Errorf("page %d: expected empty slice, got %d records", page, len(pg.Records))
		}
		if pg.TotalPages != 1 {
			t.Errorf("page %d: expected 1 total page, got %d", page, pg.TotalPages)
		}
	}
}

func TestPaginateBeyondRange(t *testing.T) {
	records := classifyAll([]string{"a", "b", "c"})

	pg := Paginate(records, 9, 2)

	if len(pg.Records) != 0 {
		t.Errorf("expected empty slice past the end, got %d records", len(pg.Records))
	}
	if pg.TotalPages != 2 {
		t.Errorf("expected 2 total pages, got %d", pg.TotalPages)
	}
}
