package sim

import (
	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
)

// Simulation is a thin fault-free specialization of BaseSim: its input
// vector is restricted to {0,1} and its output is a formatted bitstring.
type Simulation struct {
	*BaseSim
}

// NewSimulation builds a Simulation over c.
func NewSimulation(c *circuit.Circuit) *Simulation {
	return &Simulation{BaseSim: NewBaseSim(c)}
}

// SimulateInput runs a fault-free simulation of bits (a string over {0,1})
// and returns the primary outputs formatted the same way, with '?' standing
// in for any output that remained X (a circuit or input bug). The simulator
// resets itself after every call so the instance is reusable.
func (s *Simulation) SimulateInput(bits string) (string, error) {
	defer s.Reset()

	if len(bits) != len(s.Circuit.Inputs) {
		return "", &circuit.InvalidVectorError{Vector: bits, Msg: "length does not match the number of primary inputs"}
	}
	vector := make([]circuit.Logic, len(bits))
	for i := 0; i < len(bits); i++ {
		v, ok := circuit.ParseLogicBit(bits[i])
		if !ok || v == circuit.X {
			return "", &circuit.InvalidVectorError{Vector: bits, Msg: "fault-free simulation requires the alphabet {0,1}"}
		}
		vector[i] = v
	}

	if err := s.Simulate(vector); err != nil {
		return "", err
	}

	out := make([]byte, len(s.Circuit.Outputs))
	for i, po := range s.Circuit.Outputs {
		out[i] = circuit.FormatLogicBit(s.State(po))
	}
	return string(out), nil
}
