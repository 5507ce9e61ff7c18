package statlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func newCapturing() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return New("run1", log), &buf
}

func TestResultLineFormat(t *testing.T) {
	logger, buf := newCapturing()
	logger.Result("level=0\tnodes=4")
	out := buf.String()
	if !strings.Contains(out, "RESULT\trun=run1\tlevel=0\tnodes=4") {
		t.Fatalf("unexpected RESULT line: %q", out)
	}
}

func TestTimeReportsTag(t *testing.T) {
	logger, buf := newCapturing()
	logger.Time("built")
	out := buf.String()
	if !strings.Contains(out, "info=built") {
		t.Fatalf("Time output missing tag: %q", out)
	}
	if !strings.Contains(out, "time_since_start=") || !strings.Contains(out, "time_since_last_call=") {
		t.Fatalf("Time output missing duration fields: %q", out)
	}
}

func TestMemReportsTag(t *testing.T) {
	logger, buf := newCapturing()
	logger.Mem("built")
	out := buf.String()
	if !strings.Contains(out, "info=built") || !strings.Contains(out, "bytes_allocated=") {
		t.Fatalf("Mem output missing fields: %q", out)
	}
}

func TestNoteIsNotARESULTLine(t *testing.T) {
	logger, buf := newCapturing()
	logger.Note("event=test")
	out := buf.String()
	if strings.Contains(out, "RESULT") {
		t.Fatalf("Note should not emit a RESULT line: %q", out)
	}
	if !strings.Contains(out, "run=run1") || !strings.Contains(out, "event=test") {
		t.Fatalf("Note output missing fields: %q", out)
	}
}
