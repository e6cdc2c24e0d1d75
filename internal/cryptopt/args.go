package cryptopt

// singleFlag selects single-trajectory mode: one annealing chain per
// invocation instead of a population.
const singleFlag = "--single"

// Arguments builds the full argument list for one CryptOpt invocation,
// exactly one `--name=value` token per field. The simulated-annealing
// optimizer additionally takes the valueless single-trajectory flag.
func (s Settings) Arguments(tuned map[string]float64) ([]string, error) {
	fields, err := s.Fields(tuned)
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		args = append(args, "--"+f.Key+"="+f.Value)
	}

	if s.Fixed.Optimizer == "sa" {
		args = append(args, singleFlag)
	}

	return args, nil
}
