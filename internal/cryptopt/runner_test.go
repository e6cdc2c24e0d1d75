package cryptopt

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStubBinary installs a shell script standing in for the CryptOpt
// executable.
func writeStubBinary(t *testing.T, script string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cryptopt-stub")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))

	return path
}

func testRunner(t *testing.T, script string) *Runner {
	t.Helper()

	return &Runner{
		Binary:   writeStubBinary(t, script),
		Settings: testSettings(),
		Marker:   "Final ratio:",
	}
}

func TestRunnerEvaluateParsesProcessOutput(t *testing.T) {
	runner := testRunner(t,
		"echo 'batch 200/200 done'\n"+
			"echo 'Final ratio: 1.0875'\n"+
			"echo 'results/seed1234567890123456.dat'")

	res, err := runner.Evaluate(testVector())
	require.NoError(t, err)

	assert.Equal(t, 1.0875, res.Score)
	assert.Equal(t, "1234567890123456", res.RunID)
}

func TestRunnerEvaluatePassesArguments(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args.txt")

	runner := testRunner(t,
		"printf '%s\\n' \"$@\" > "+strconv.Quote(argsFile)+"\n"+
			"echo 'Final ratio: 1.5'\n"+
			"echo 'results/seed1234567890123456.dat'")

	_, err := runner.Evaluate(testVector())
	require.NoError(t, err)

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)

	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	want, err := runner.Settings.Arguments(testVector())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRunnerEvaluateDiscardsStderr(t *testing.T) {
	runner := testRunner(t,
		"echo 'warning: assembly mismatch' 1>&2\n"+
			"echo 'Final ratio: 2.5'\n"+
			"echo 'results/seed1111111111111111.dat'")

	res, err := runner.Evaluate(testVector())
	require.NoError(t, err)
	assert.Equal(t, 2.5, res.Score)
}

func TestRunnerEvaluateIgnoresExitCodeWhenOutputIsComplete(t *testing.T) {
	runner := testRunner(t,
		"echo 'Final ratio: 0.99'\n"+
			"echo 'results/seed2222222222222222.dat'\n"+
			"exit 3")

	res, err := runner.Evaluate(testVector())
	require.NoError(t, err)
	assert.Equal(t, 0.99, res.Score)
}

func TestRunnerEvaluateMissingBinary(t *testing.T) {
	runner := &Runner{
		Binary:   filepath.Join(t.TempDir(), "does-not-exist"),
		Settings: testSettings(),
		Marker:   "Final ratio:",
	}

	_, err := runner.Evaluate(testVector())

	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, MissingScoreLine, malformed.Kind)
}

func TestRunnerEvaluateFailingProcessWithoutScore(t *testing.T) {
	runner := testRunner(t,
		"echo 'panic: register allocation failed'\n"+
			"exit 1")

	_, err := runner.Evaluate(testVector())

	var malformed *MalformedOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, MissingScoreLine, malformed.Kind)
}

func TestRunnerDescribeMatchesArguments(t *testing.T) {
	runner := testRunner(t, "true")

	fields, err := runner.Describe(testVector())
	require.NoError(t, err)

	args, err := runner.Settings.Arguments(testVector())
	require.NoError(t, err)

	// Every field shows up as a flag; only the valueless mode flag is extra.
	require.Len(t, args, len(fields)+1)
	for i, f := range fields {
		assert.Equal(t, "--"+f.Key+"="+f.Value, args[i])
	}
}
