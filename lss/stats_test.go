package lss

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// recordingLogger captures every Result call so Stats output can be
// inspected without a concrete statlog dependency.
type recordingLogger struct {
	results []string
}

func (*recordingLogger) Time(string) {}
func (*recordingLogger) Mem(string)  {}
func (*recordingLogger) Note(string) {}
func (r *recordingLogger) Result(kv string) {
	r.results = append(r.results, kv)
}

func TestStatsRelativeToCapacityInRange(t *testing.T) {
	values := make([]Value, 0, 5000)
	for i := Value(0); i < 5000; i++ {
		values = append(values, i*13)
	}
	h := buildFixture(t, values)

	sink := &recordingLogger{}
	h.Stats(sink)

	if len(sink.results) == 0 {
		t.Fatal("Stats produced no RESULT lines")
	}
	for _, line := range sink.results {
		if !strings.Contains(line, "relative_to_capacity=") {
			continue
		}
		ratio := extractFloat(t, line, "relative_to_capacity=")
		if ratio < 0 || ratio > 1 {
			t.Errorf("relative_to_capacity out of [0,1] in %q: %g", line, ratio)
		}
	}
}

func TestStatsFinalLineReportsElementCount(t *testing.T) {
	values := []Value{1, 2, 3, 100, 1000}
	h := buildFixture(t, values)
	sink := &recordingLogger{}
	h.Stats(sink)

	last := sink.results[len(sink.results)-1]
	if !strings.HasPrefix(last, "level=-1") {
		t.Fatalf("last RESULT line = %q, want level=-1 prefix", last)
	}
	if !strings.Contains(last, fmt.Sprintf("elements=%d", len(values))) {
		t.Fatalf("last RESULT line = %q, want elements=%d", last, len(values))
	}
}

func extractFloat(t *testing.T, line, key string) float64 {
	t.Helper()
	idx := strings.Index(line, key)
	if idx < 0 {
		t.Fatalf("key %q not found in %q", key, line)
	}
	rest := line[idx+len(key):]
	if tab := strings.IndexByte(rest, '\t'); tab >= 0 {
		rest = rest[:tab]
	}
	v, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		t.Fatalf("parsing float from %q: %v", rest, err)
	}
	return v
}
