// Package runlog maintains the plain-text record of a tuning run: one block
// per external trial, one summary line per iteration, and a final line with
// the winning parameters. The file is the run's only durable artifact, so
// every entry is flushed to disk before the write returns.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Field is one rendered name/value pair of a trial block.
type Field struct {
	Key   string
	Value string
}

// Log is an append-only run record. Writes are serialized, flushed
// immediately, and fail once the log is closed. Close may be called on every
// exit path; calls after the first are no-ops.
type Log struct {
	mu     sync.Mutex
	f      *os.File
	closed bool
}

// Open creates the run log at path, truncating any previous run's file.
func Open(path string) (*Log, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log %s: %w", path, err)
	}

	return &Log{f: f}, nil
}

// Header records the budgets, the start time, the constant settings, and the
// tuned-parameter bounds. Written once, before the first iteration.
func (l *Log) Header(trials, iterations int, start time.Time, constants map[string]string, bounds map[string][2]float64) error {
	constJSON, err := json.Marshal(constants)
	if err != nil {
		return fmt.Errorf("failed to encode constant parameters: %w", err)
	}

	boundsJSON, err := json.Marshal(bounds)
	if err != nil {
		return fmt.Errorf("failed to encode parameter bounds: %w", err)
	}

	return l.write(fmt.Sprintf(
		"Performing Bayesian Optimization <trials per run: %d> <num iterations: %d> <time: %s>\n"+
			"Using the following constant parameters: %s\n"+
			"Tuning following parameters w/ bounds: %s\n",
		trials, iterations, start.Format(time.ANSIC), constJSON, boundsJSON))
}

// Trial records one external run under the iteration it belongs to: the run
// identifier reported by the binary, every invocation field, and the score.
func (l *Log) Trial(iteration int, runID string, fields []Field, score float64) error {
	var b strings.Builder

	fmt.Fprintf(&b, "iter: %d\n", iteration)
	fmt.Fprintf(&b, "\tseed: %s\n", runID)

	for _, f := range fields {
		fmt.Fprintf(&b, "\t%s=%s\n", f.Key, f.Value)
	}

	fmt.Fprintf(&b, "\t=> ratio: %s\n\n", formatScore(score))

	return l.write(b.String())
}

// Aggregate records the iteration summary once all of its trials completed.
func (l *Log) Aggregate(trials int, score float64) error {
	return l.write(fmt.Sprintf("geo_avg (across %d trials): %s\n", trials, formatScore(score)))
}

// Best records the winning parameter vector and its aggregate score.
func (l *Log) Best(params map[string]float64, score float64) error {
	payload, err := json.Marshal(struct {
		Params map[string]float64 `json:"params"`
		Target float64            `json:"target"`
	}{Params: params, Target: score})
	if err != nil {
		return fmt.Errorf("failed to encode best parameters: %w", err)
	}

	return l.write(fmt.Sprintf("Best performing parameters: %s\n", payload))
}

// Close flushes and releases the log file. Safe to call more than once.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true

	if err := l.f.Close(); err != nil {
		return fmt.Errorf("failed to close run log: %w", err)
	}

	return nil
}

func (l *Log) write(entry string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("run log is closed")
	}

	if _, err := l.f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write run log entry: %w", err)
	}

	// Completed trials must survive a crash of the tuner.
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("failed to flush run log: %w", err)
	}

	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
