package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vishwajitvm/tracenest/internal/controller"
	"github.com/vishwajitvm/tracenest/internal/model"
	"github.com/vishwajitvm/tracenest/internal/stats"
)

func sampleView() controller.ViewModel {
	records := []model.LogRecord{
		{
			Level:       model.LevelError,
			Timestamp:   "2026-01-12T10:00:00Z",
			Environment: "prod",
			Message:     "Payment failed",
			Structured:  true,
			Raw:         `{"level":"error","message":"Payment failed"}`,
		},
	}
	return controller.ViewModel{
		State:         controller.StateReady,
		Source:        "app.log",
		Records:       records,
		Page:          1,
		TotalPages:    1,
		TotalFiltered: 1,
		PageSize:      50,
		Stats:         stats.Collect("app.log", records),
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	renderer := &TextRenderer{w: &buf}

	if err := renderer.Render(sampleView()); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "app.log") {
		t.Errorf("expected source in header, got %q", out)
	}
	if !strings.Contains(out, "page 1/1") {
		t.Errorf("expected page info in header, got %q", out)
	}
	if !strings.Contains(out, "Payment failed") {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	renderer := &JSONRenderer{enc: json.NewEncoder(&buf)}

	if err := renderer.Render(sampleView()); err != nil {
		t.Fatal(err)
	}

	var got model.LogRecord
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\nraw: %s", err, buf.String())
	}

	if got.Level != model.LevelError {
		t.Errorf("expected level error, got %s", got.Level)
	}
	if got.Message != "Payment failed" {
		t.Errorf("expected message 'Payment failed', got %q", got.Message)
	}
	if !got.Structured {
		t.Error("expected structured=true")
	}
}
