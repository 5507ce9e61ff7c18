// Package statlog is the logrus-backed implementation of lss.Logger. It
// reproduces the RESULT-line reporting of original_source's src/log.rs:
// one RESULT line per Time/Mem/Result call, run=<name> plus
// tab-separated key=value fields, so existing log-scraping tooling built
// around that format keeps working. Note writes a debug-level line outside
// the RESULT format.
package statlog

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger implements lss.Logger on top of a logrus.FieldLogger.
type Logger struct {
	log     logrus.FieldLogger
	runName string
	start   time.Time
	last    time.Time
	memBase uint64
}

// New returns a Logger that tags every RESULT line run=runName. If log is
// nil, logrus.StandardLogger() is used.
func New(runName string, log logrus.FieldLogger) *Logger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	now := time.Now()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return &Logger{log: log, runName: runName, start: now, last: now, memBase: m.TotalAlloc}
}

// Time reports elapsed time since the last call and since New, mirroring
// log.rs's log_time.
func (l *Logger) Time(tag string) {
	now := time.Now()
	l.Result(fmt.Sprintf("info=%s\ttime_since_last_call=%dms\ttime_since_start=%dms",
		tag, now.Sub(l.last).Milliseconds(), now.Sub(l.start).Milliseconds()))
	l.last = now
}

// Mem reports cumulative bytes allocated since New, mirroring log.rs's
// log_mem (which tracks a stats_alloc Region; Go has no per-region
// allocator hook, so this reports process-wide TotalAlloc growth instead).
func (l *Logger) Mem(tag string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	l.Result(fmt.Sprintf("info=%s\tbytes_allocated=%d\theap_alloc=%d", tag, m.TotalAlloc-l.memBase, m.HeapAlloc))
}

// Result emits one RESULT line, already formatted as tab-separated
// key=value pairs.
func (l *Logger) Result(kv string) {
	l.log.Infof("RESULT\trun=%s\t%s", l.runName, kv)
}

// Note emits a free-form diagnostic line outside the RESULT format.
func (l *Logger) Note(kv string) {
	l.log.Debugf("run=%s\t%s", l.runName, kv)
}
