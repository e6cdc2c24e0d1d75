// Package cryptopt is the boundary to the external CryptOpt binary. It
// renders invocation arguments from a candidate parameter assignment, then
// runs the binary and parses the score and run identifier out of its output.
package cryptopt

import (
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/Toalaah/CryptOpt/internal/runlog"
)

// FixedConfig holds the CryptOpt settings that stay constant across every
// trial of a run.
type FixedConfig struct {
	Curve            string
	Method           string
	Evals            string
	Optimizer        string
	CoolingSchedule  string
	NeighborStrategy string
}

// knobSuffixes maps the configuration name of each numeric annealing knob to
// its flag suffix. The full flag name is the optimizer identifier followed by
// the suffix (saInitialTemperature, saAcceptParam, ...).
var knobSuffixes = map[string]string{
	"initial_temperature": "InitialTemperature",
	"num_neighbors":       "NumNeighbors",
	"step_size_param":     "StepSizeParam",
	"max_mut_step_size":   "MaxMutStepSize",
	"visit_param":         "VisitParam",
	"accept_param":        "AcceptParam",
}

// KnownKnob reports whether name is a numeric annealing knob CryptOpt
// accepts.
func KnownKnob(name string) bool {
	_, ok := knobSuffixes[name]
	return ok
}

// KnobNames returns every knob name in canonical order.
func KnobNames() []string {
	names := maps.Keys(knobSuffixes)
	sort.Strings(names)

	return names
}

// Settings is the invocation surface of one tuning run: the fixed
// configuration plus the knobs pinned to a constant value. Values for the
// tuned knobs arrive per call.
type Settings struct {
	Fixed  FixedConfig
	Pinned map[string]float64
}

// Fields renders the complete field set of one invocation: the fixed settings
// first, then every knob (pinned and tuned) in canonical order, then the
// string-valued annealing settings. The same rendering backs both the
// argument list and the run-log trial block, so the log always shows exactly
// what the binary was given.
func (s Settings) Fields(tuned map[string]float64) ([]runlog.Field, error) {
	fields := []runlog.Field{
		{Key: "curve", Value: s.Fixed.Curve},
		{Key: "method", Value: s.Fixed.Method},
		{Key: "evals", Value: s.Fixed.Evals},
		{Key: "optimizer", Value: s.Fixed.Optimizer},
	}

	values := make(map[string]float64, len(s.Pinned)+len(tuned))
	for name, v := range s.Pinned {
		values[name] = v
	}
	for name, v := range tuned {
		if _, dup := values[name]; dup {
			return nil, fmt.Errorf("parameter %s is both pinned and tuned", name)
		}
		values[name] = v
	}

	names := maps.Keys(values)
	sort.Strings(names)

	for _, name := range names {
		suffix, ok := knobSuffixes[name]
		if !ok {
			return nil, fmt.Errorf("unknown tuning parameter %q", name)
		}

		fields = append(fields, runlog.Field{
			Key:   s.Fixed.Optimizer + suffix,
			Value: formatValue(values[name]),
		})
	}

	fields = append(fields,
		runlog.Field{Key: s.Fixed.Optimizer + "CoolingSchedule", Value: s.Fixed.CoolingSchedule},
		runlog.Field{Key: s.Fixed.Optimizer + "NeighborStrategy", Value: s.Fixed.NeighborStrategy},
	)

	return fields, nil
}

// formatValue renders a knob value at full precision, so the binary sees the
// exact float the optimizer proposed.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
