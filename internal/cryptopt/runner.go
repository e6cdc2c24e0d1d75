package cryptopt

import (
	"bytes"
	"os/exec"

	"github.com/sirupsen/logrus"

	"github.com/Toalaah/CryptOpt/internal/runlog"
)

// Runner launches the CryptOpt binary once per trial and turns its output
// into a TrialResult.
type Runner struct {
	// Binary is the path of the CryptOpt executable.
	Binary string

	// Settings is the fixed invocation surface of the run.
	Settings Settings

	// Marker is the literal label of the score line in the binary's output.
	Marker string
}

// Evaluate runs one trial with the given tuned knob values. The process runs
// synchronously and without a timeout; stdout is captured for parsing and
// stderr is discarded. A launch failure or non-zero exit is not translated:
// whatever stdout was captured goes to the parser, so such failures surface
// uniformly as a MalformedOutputError.
func (r *Runner) Evaluate(tuned map[string]float64) (TrialResult, error) {
	args, err := r.Settings.Arguments(tuned)
	if err != nil {
		return TrialResult{}, err
	}

	cmd := exec.Command(r.Binary, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		logrus.WithError(err).Debugf("%s exited abnormally", r.Binary)
	}

	return ParseOutput(stdout.String(), r.Marker)
}

// Describe renders the invocation fields for the run log.
func (r *Runner) Describe(tuned map[string]float64) ([]runlog.Field, error) {
	return r.Settings.Fields(tuned)
}
