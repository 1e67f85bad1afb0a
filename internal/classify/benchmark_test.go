package classify

import (
	"fmt"
	"testing"
)

// BenchmarkClassifyStructured measures embedded-JSON classification throughput.
func BenchmarkClassifyStructured(b *testing.B) {
	line := `{"schema":"tracenest.v1","level":"error","message":"disk full","timestamp":"2026-01-12T10:00:00Z","env":"prod","meta":{"request_id":"abc-123"}}`

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Classify(line)
	}
}

// BenchmarkClassifyPlain measures keyword/regex classification throughput.
func BenchmarkClassifyPlain(b *testing.B) {
	line := "2026-01-12 10:00:00 WARN [prod] cache miss on key user:42"

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Classify(line)
	}
}

// BenchmarkClassifyThroughput measures sustained lines/sec over a mixed batch.
func BenchmarkClassifyThroughput(b *testing.B) {
	lines := make([]string, 1000)
	for i := range lines {
		switch i % 3 {
		case 0:
			lines[i] = fmt.Sprintf(`{"level":"info","message":"request %d completed","latency_ms":42}`, i)
		case 1:
			lines[i] = fmt.Sprintf("2026-01-12T10:00:00 ERROR failed to process item %d", i)
		case 2:
			lines[i] = fmt.Sprintf("plain text line %d with no markers", i)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Classify(lines[i%1000])
	}
}
