package cryptopt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() Settings {
	return Settings{
		Fixed: FixedConfig{
			Curve:            "curve25519",
			Method:           "square",
			Evals:            "10k",
			Optimizer:        "sa",
			CoolingSchedule:  "exp",
			NeighborStrategy: "greedy",
		},
		Pinned: map[string]float64{
			"num_neighbors":     1,
			"max_mut_step_size": -1,
		},
	}
}

func testVector() map[string]float64 {
	return map[string]float64{
		"initial_temperature": 12500,
		"step_size_param":     0.5,
		"visit_param":         3.25,
		"accept_param":        1.5,
	}
}

func TestArgumentsCompleteAndOrdered(t *testing.T) {
	args, err := testSettings().Arguments(testVector())
	require.NoError(t, err)

	want := []string{
		"--curve=curve25519",
		"--method=square",
		"--evals=10k",
		"--optimizer=sa",
		"--saAcceptParam=1.5",
		"--saInitialTemperature=12500",
		"--saMaxMutStepSize=-1",
		"--saNumNeighbors=1",
		"--saStepSizeParam=0.5",
		"--saVisitParam=3.25",
		"--saCoolingSchedule=exp",
		"--saNeighborStrategy=greedy",
		"--single",
	}
	assert.Equal(t, want, args)
}

func TestArgumentsOneFlagPerField(t *testing.T) {
	args, err := testSettings().Arguments(testVector())
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, arg := range args {
		name, _, _ := strings.Cut(arg, "=")
		seen[name]++
	}

	for name, count := range seen {
		assert.Equalf(t, 1, count, "flag %s appears %d times", name, count)
	}
}

func TestArgumentsSingleFlagOnlyForSimulatedAnnealing(t *testing.T) {
	settings := testSettings()
	settings.Fixed.Optimizer = "ls"

	args, err := settings.Arguments(testVector())
	require.NoError(t, err)

	assert.NotContains(t, args, "--single")
	assert.Contains(t, args, "--lsAcceptParam=1.5")
}

func TestArgumentsFullPrecisionValues(t *testing.T) {
	vec := testVector()
	vec["initial_temperature"] = 12345.678901234567
	vec["step_size_param"] = 0.1 + 0.2

	args, err := testSettings().Arguments(vec)
	require.NoError(t, err)

	assert.Contains(t, args, "--saInitialTemperature=12345.678901234567")
	assert.Contains(t, args, "--saStepSizeParam=0.30000000000000004")
}

func TestFieldsRejectsUnknownParameter(t *testing.T) {
	vec := testVector()
	vec["reheat_factor"] = 2.0

	_, err := testSettings().Fields(vec)
	assert.ErrorContains(t, err, `unknown tuning parameter "reheat_factor"`)
}

func TestFieldsRejectsPinnedAndTunedOverlap(t *testing.T) {
	vec := testVector()
	vec["num_neighbors"] = 4

	_, err := testSettings().Fields(vec)
	assert.ErrorContains(t, err, "both pinned and tuned")
}

func TestKnobNamesCanonicalOrder(t *testing.T) {
	assert.Equal(t, []string{
		"accept_param",
		"initial_temperature",
		"max_mut_step_size",
		"num_neighbors",
		"step_size_param",
		"visit_param",
	}, KnobNames())

	assert.True(t, KnownKnob("visit_param"))
	assert.False(t, KnownKnob("reheat_factor"))
}
