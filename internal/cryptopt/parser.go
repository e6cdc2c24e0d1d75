package cryptopt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Defect kinds reported by ParseOutput.
const (
	// MissingScoreLine means no line of the output carried the score marker
	// followed by a parseable float.
	MissingScoreLine = "missing-score-line"

	// MissingRunID means the output never referenced a result file of the
	// form seed<16 digits>.dat.
	MissingRunID = "missing-run-id"
)

// MalformedOutputError reports CryptOpt output that lacks a required marker.
// It is always fatal to the run; there is no retry and no substitute score.
// A crashed binary, a missing binary, and a non-zero exit all surface as this
// error, since none of them produce a score line.
type MalformedOutputError struct {
	// Kind is MissingScoreLine or MissingRunID.
	Kind string

	// Marker is the score label that was searched for; set only for
	// MissingScoreLine.
	Marker string
}

func (e *MalformedOutputError) Error() string {
	if e.Kind == MissingScoreLine {
		return fmt.Sprintf("malformed optimizer output: no score line starting with %q", e.Marker)
	}

	return "malformed optimizer output: no run identifier of the form seed<16 digits>.dat"
}

// TrialResult is the parsed outcome of one external run.
type TrialResult struct {
	// Score is the ratio CryptOpt reported for the optimized routine.
	Score float64

	// RunID is the 16-digit seed of the run's result file, kept for
	// traceability.
	RunID string
}

// terminalEscapes matches the CSI escape sequences and C1 control bytes that
// CryptOpt interleaves with its progress output.
var terminalEscapes = regexp.MustCompile(`(?:\x1b[@-_]|[\x80-\x9f])[0-?]*[ -/]*[@-~]`)

// runIDPattern matches the result filename CryptOpt prints: a literal seed
// prefix, exactly sixteen decimal digits, and the .dat extension.
var runIDPattern = regexp.MustCompile(`seed(\d{16})\.dat`)

// ParseOutput extracts the score and the run identifier from raw CryptOpt
// stdout. Terminal control sequences are stripped before matching; marker is
// the literal label of the score line (typically "Final ratio:"). Pure
// function of its input.
func ParseOutput(raw, marker string) (TrialResult, error) {
	clean := terminalEscapes.ReplaceAllString(raw, "")

	score, ok := findScore(clean, marker)
	if !ok {
		return TrialResult{}, &MalformedOutputError{Kind: MissingScoreLine, Marker: marker}
	}

	m := runIDPattern.FindStringSubmatch(clean)
	if m == nil {
		return TrialResult{}, &MalformedOutputError{Kind: MissingRunID}
	}

	return TrialResult{Score: score, RunID: m[1]}, nil
}

// findScore scans for the first line beginning with marker and parses the
// token that follows it.
func findScore(text, marker string) (float64, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, marker) {
			continue
		}

		tokens := strings.Fields(strings.TrimPrefix(line, marker))
		if len(tokens) == 0 {
			return 0, false
		}

		score, err := strconv.ParseFloat(tokens[0], 64)
		if err != nil {
			return 0, false
		}

		return score, true
	}

	return 0, false
}
