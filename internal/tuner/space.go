package tuner

import "fmt"

// Param is one tuned parameter: its name and inclusive search interval.
type Param struct {
	Name string
	Low  float64
	High float64
}

// Space is the ordered set of tuned parameters of a run. The order is fixed
// at construction and shared with the surrogate optimizer: component i of
// every point corresponds to Params()[i].
type Space struct {
	params []Param
}

// NewSpace builds a space from the tuned parameters, keeping their order.
func NewSpace(params []Param) (*Space, error) {
	if len(params) == 0 {
		return nil, fmt.Errorf("no tuned parameters")
	}

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			return nil, fmt.Errorf("parameter %s declared twice", p.Name)
		}
		seen[p.Name] = true

		if p.Low >= p.High {
			return nil, fmt.Errorf("parameter %s: bound [%v, %v] is empty", p.Name, p.Low, p.High)
		}
	}

	return &Space{params: append([]Param(nil), params...)}, nil
}

// Params returns the parameters in space order.
func (s *Space) Params() []Param {
	return append([]Param(nil), s.params...)
}

// Len returns the dimensionality of the space.
func (s *Space) Len() int {
	return len(s.params)
}

// Vector names the components of a point.
func (s *Space) Vector(point []float64) map[string]float64 {
	vec := make(map[string]float64, len(s.params))
	for i, p := range s.params {
		vec[p.Name] = point[i]
	}

	return vec
}

// Bounds returns the [low, high] pairs keyed by parameter name, the form the
// run-log header records.
func (s *Space) Bounds() map[string][2]float64 {
	bounds := make(map[string][2]float64, len(s.params))
	for _, p := range s.params {
		bounds[p.Name] = [2]float64{p.Low, p.High}
	}

	return bounds
}
