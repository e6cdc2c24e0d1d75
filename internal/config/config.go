// Package config declares the YAML run configuration: which CryptOpt
// settings stay fixed, which annealing knobs are pinned, which are tuned and
// over what intervals, and the iteration and trial budgets.
package config

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"

	"github.com/Toalaah/CryptOpt/internal/cryptopt"
)

// Parameter declares how one annealing knob participates in a run: tuned
// over [Low, High], or pinned to Value. The two forms are mutually
// exclusive.
type Parameter struct {
	Low   *float64 `yaml:"low,omitempty"`
	High  *float64 `yaml:"high,omitempty"`
	Value *float64 `yaml:"value,omitempty"`
}

// Config is the full run configuration. Zero values are not usable; start
// from Default and layer a file on top with Load.
type Config struct {
	Curve            string `yaml:"curve"`
	Method           string `yaml:"method"`
	Evals            string `yaml:"evals"`
	Optimizer        string `yaml:"optimizer"`
	CoolingSchedule  string `yaml:"cooling_schedule"`
	NeighborStrategy string `yaml:"neighbor_strategy"`

	// Iterations is the total optimizer budget, random warm-up included.
	Iterations int `yaml:"iterations"`

	// Trials is how many times each candidate is measured.
	Trials int `yaml:"trials"`

	// InitPoints is the number of randomly sampled candidates before the
	// surrogate model takes over.
	InitPoints int `yaml:"init_points"`

	// ScoreMarker is the line prefix CryptOpt prints its final ratio behind.
	ScoreMarker string `yaml:"score_marker"`

	LogFile string `yaml:"log_file"`

	// Parameters maps knob names to their declarations. An entry in a loaded
	// file replaces the default declaration of that knob wholesale; knobs the
	// file does not name keep their defaults.
	Parameters map[string]Parameter `yaml:"parameters"`
}

// TunedParameter is one knob searched over an interval.
type TunedParameter struct {
	Name string
	Low  float64
	High float64
}

func floatPtr(v float64) *float64 { return &v }

// Default returns the stock configuration: tune the four continuous
// annealing knobs of the sa optimizer on the curve25519 squaring kernel and
// pin the discrete ones.
func Default() Config {
	return Config{
		Curve:            "curve25519",
		Method:           "square",
		Evals:            "10k",
		Optimizer:        "sa",
		CoolingSchedule:  "exp",
		NeighborStrategy: "greedy",
		Iterations:       25,
		Trials:           3,
		InitPoints:       5,
		ScoreMarker:      "Final ratio:",
		LogFile:          "bayesian-stats.log",
		Parameters: map[string]Parameter{
			"initial_temperature": {Low: floatPtr(5000), High: floatPtr(20000)},
			"step_size_param":     {Low: floatPtr(0.001), High: floatPtr(10)},
			"visit_param":         {Low: floatPtr(0.01), High: floatPtr(10)},
			"accept_param":        {Low: floatPtr(0.01), High: floatPtr(10)},
			"num_neighbors":       {Value: floatPtr(1)},
			"max_mut_step_size":   {Value: floatPtr(-1)},
		},
	}
}

// Load reads a YAML file and layers it over base. Scalar fields present in
// the file override base; the parameters block overrides per knob.
func Load(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := base
	cfg.Parameters = maps.Clone(base.Parameters)

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for contradictions before anything is
// launched.
func (c Config) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"curve", c.Curve},
		{"method", c.Method},
		{"evals", c.Evals},
		{"optimizer", c.Optimizer},
		{"cooling_schedule", c.CoolingSchedule},
		{"neighbor_strategy", c.NeighborStrategy},
		{"score_marker", c.ScoreMarker},
		{"log_file", c.LogFile},
	} {
		if field.value == "" {
			return fmt.Errorf("%s must not be empty", field.name)
		}
	}

	if c.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", c.Iterations)
	}
	if c.Trials < 1 {
		return fmt.Errorf("trials must be at least 1, got %d", c.Trials)
	}
	if c.InitPoints < 0 {
		return fmt.Errorf("init_points must not be negative, got %d", c.InitPoints)
	}
	if c.InitPoints > c.Iterations {
		return fmt.Errorf("init_points (%d) must not exceed iterations (%d)", c.InitPoints, c.Iterations)
	}

	tuned := 0
	for _, name := range c.parameterNames() {
		p := c.Parameters[name]

		if !cryptopt.KnownKnob(name) {
			return fmt.Errorf("unknown parameter %q", name)
		}

		switch {
		case p.Value != nil:
			if p.Low != nil || p.High != nil {
				return fmt.Errorf("parameter %s: value and low/high are mutually exclusive", name)
			}
		case p.Low != nil && p.High != nil:
			if *p.Low >= *p.High {
				return fmt.Errorf("parameter %s: bound [%v, %v] is empty", name, *p.Low, *p.High)
			}
			tuned++
		default:
			return fmt.Errorf("parameter %s: declare either value or both low and high", name)
		}
	}

	if tuned == 0 {
		return fmt.Errorf("no tuned parameters")
	}

	return nil
}

// Tuned returns the searched parameters in canonical order. The order is
// what ties optimizer point components to knob names for the rest of a run.
func (c Config) Tuned() []TunedParameter {
	var tuned []TunedParameter
	for _, name := range c.parameterNames() {
		p := c.Parameters[name]
		if p.Value != nil || p.Low == nil || p.High == nil {
			continue
		}

		tuned = append(tuned, TunedParameter{Name: name, Low: *p.Low, High: *p.High})
	}

	return tuned
}

// Pinned returns the knobs held at a constant value.
func (c Config) Pinned() map[string]float64 {
	pinned := make(map[string]float64)
	for name, p := range c.Parameters {
		if p.Value != nil {
			pinned[name] = *p.Value
		}
	}

	return pinned
}

// Fixed returns the CryptOpt settings shared by every trial.
func (c Config) Fixed() cryptopt.FixedConfig {
	return cryptopt.FixedConfig{
		Curve:            c.Curve,
		Method:           c.Method,
		Evals:            c.Evals,
		Optimizer:        c.Optimizer,
		CoolingSchedule:  c.CoolingSchedule,
		NeighborStrategy: c.NeighborStrategy,
	}
}

func (c Config) parameterNames() []string {
	names := maps.Keys(c.Parameters)
	sort.Strings(names)

	return names
}
