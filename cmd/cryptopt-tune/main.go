// Command cryptopt-tune searches for good CryptOpt annealing parameters by
// treating the CryptOpt binary as a noisy black-box objective. A surrogate
// optimizer proposes candidates; each one is measured over repeated runs and
// the geometric mean of the measured ratios feeds back into the model.
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Toalaah/CryptOpt/internal/bayesopt"
	"github.com/Toalaah/CryptOpt/internal/config"
	"github.com/Toalaah/CryptOpt/internal/cryptopt"
	"github.com/Toalaah/CryptOpt/internal/runlog"
	"github.com/Toalaah/CryptOpt/internal/tuner"
)

var (
	logLevel string

	cfgFile     string
	binaryPath  string
	logFile     string
	iterations  int
	trials      int
	initPoints  int
	seed        int64
	curve       string
	method      string
	evals       string
	optimizer   string
	acquisition string
)

var rootCmd = &cobra.Command{
	Use:           "cryptopt-tune",
	Short:         "Hyperparameter search for the CryptOpt assembly optimizer",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)

		return nil
	},
}

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Run the tuning loop against a CryptOpt binary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		return run(cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "diagnostic verbosity (trace, debug, info, warn, error)")

	flags := tuneCmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "YAML tuning configuration, layered over the defaults")
	flags.StringVarP(&binaryPath, "binary", "b", "./CryptOpt", "path of the CryptOpt executable")
	flags.StringVar(&logFile, "log-file", "", "run log destination (overrides config)")
	flags.IntVar(&iterations, "iterations", 0, "optimizer iterations (overrides config)")
	flags.IntVar(&trials, "trials", 0, "trials per candidate (overrides config)")
	flags.IntVar(&initPoints, "init-points", 0, "random candidates before the surrogate model engages (overrides config)")
	flags.Int64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.StringVar(&curve, "curve", "", "elliptic curve to optimize for (overrides config)")
	flags.StringVar(&method, "method", "", "field operation to optimize (overrides config)")
	flags.StringVar(&evals, "evals", "", "CryptOpt evaluation budget per run (overrides config)")
	flags.StringVar(&optimizer, "optimizer", "", "CryptOpt optimizer identifier (overrides config)")
	flags.StringVar(&acquisition, "acquisition", "ucb", "acquisition function (ucb, ei, pi, thompson)")

	rootCmd.AddCommand(tuneCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

// buildConfig layers the three configuration sources: compiled-in defaults,
// then the YAML file, then whatever flags were set on the command line.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if cfgFile != "" {
		loaded, err := config.Load(cfgFile, cfg)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("trials") {
		cfg.Trials = trials
	}
	if flags.Changed("init-points") {
		cfg.InitPoints = initPoints
	}
	if flags.Changed("curve") {
		cfg.Curve = curve
	}
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("evals") {
		cfg.Evals = evals
	}
	if flags.Changed("optimizer") {
		cfg.Optimizer = optimizer
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func acquisitionByName(name string) (bayesopt.AcquisitionFunc, error) {
	switch name {
	case "ucb":
		return bayesopt.UCB, nil
	case "ei":
		return bayesopt.ExpectedImprovement, nil
	case "pi":
		return bayesopt.ProbabilityOfImprovement, nil
	case "thompson":
		return bayesopt.ThompsonSampling, nil
	}

	return nil, fmt.Errorf("unknown acquisition function %q", name)
}

func run(cfg config.Config) error {
	acq, err := acquisitionByName(acquisition)
	if err != nil {
		return err
	}

	log, err := runlog.Open(cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Close()

	var (
		params []tuner.Param
		bounds []bayesopt.Bounds
	)
	for _, p := range cfg.Tuned() {
		params = append(params, tuner.Param{Name: p.Name, Low: p.Low, High: p.High})
		bounds = append(bounds, bayesopt.Bounds{Min: p.Low, Max: p.High})
	}

	space, err := tuner.NewSpace(params)
	if err != nil {
		return err
	}

	runner := &cryptopt.Runner{
		Binary: binaryPath,
		Settings: cryptopt.Settings{
			Fixed:  cfg.Fixed(),
			Pinned: cfg.Pinned(),
		},
		Marker: cfg.ScoreMarker,
	}

	optCfg := bayesopt.DefaultConfig()
	optCfg.InitialSamples = cfg.InitPoints
	optCfg.Acquisition = acq
	if seed != 0 {
		optCfg.AcqParams.RandomState = rand.New(rand.NewSource(seed))
	}

	opt := bayesopt.New(bounds, optCfg)

	if err := log.Header(cfg.Trials, cfg.Iterations, time.Now(), headerConstants(cfg), space.Bounds()); err != nil {
		return err
	}

	agg, err := tuner.NewAggregator(runner, cfg.Trials, log)
	if err != nil {
		return err
	}

	driver, err := tuner.NewDriver(space, opt, agg, log, cfg.Iterations)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"binary":     binaryPath,
		"iterations": cfg.Iterations,
		"trials":     cfg.Trials,
		"log":        cfg.LogFile,
	}).Info("starting tuning run")

	res, err := driver.Run()
	if err != nil {
		return err
	}

	out, err := json.Marshal(struct {
		Params map[string]float64 `json:"params"`
		Target float64            `json:"target"`
	}{res.Best, res.Score})
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}

// headerConstants collects everything that stays fixed across the run for
// the log header: the CryptOpt settings plus the pinned knobs.
func headerConstants(cfg config.Config) map[string]string {
	constants := map[string]string{
		"curve":             cfg.Curve,
		"method":            cfg.Method,
		"evals":             cfg.Evals,
		"optimizer":         cfg.Optimizer,
		"cooling_schedule":  cfg.CoolingSchedule,
		"neighbor_strategy": cfg.NeighborStrategy,
	}
	for name, v := range cfg.Pinned() {
		constants[name] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return constants
}
