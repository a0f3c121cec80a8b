// Package podem implements the PODEM (Path-Oriented DEcision Making) test
// generator: recursive backtracking search for a primary-input vector that
// activates a target stuck-at fault and propagates its effect to a primary
// output.
package podem

import (
	"github.com/rs/zerolog"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
	"github.com/jack-mil/atpg-toolkit/pkg/errorsim"
	"github.com/jack-mil/atpg-toolkit/pkg/utils"
)

// TestGenerator searches for a test vector detecting a single target fault.
type TestGenerator struct {
	sim *errorsim.ErrorSim
	log zerolog.Logger
}

// NewTestGenerator builds a TestGenerator over c.
func NewTestGenerator(c *circuit.Circuit) *TestGenerator {
	return &TestGenerator{
		sim: errorsim.NewErrorSim(c),
		log: utils.NewLogger(zerolog.Disabled).With().Str("component", "podem").Logger(),
	}
}

// WithLogger attaches a logger and returns the TestGenerator for chaining.
func (t *TestGenerator) WithLogger(log zerolog.Logger) *TestGenerator {
	t.log = log.With().Str("component", "podem").Logger()
	t.sim.WithLogger(t.log)
	return t
}

// GenerateTest searches for a test vector detecting fault. It returns the
// vector in circuit-input order with 'X' standing for any primary input the
// search left unconstrained, or ok=false if the fault is proven undetectable.
func (t *TestGenerator) GenerateTest(fault circuit.Fault) (vector string, ok bool, err error) {
	if !t.sim.Circuit.HasNet(fault.Net) {
		return "", false, &circuit.InvalidNetError{Net: fault.Net.String()}
	}

	t.sim.StartState(fault)
	t.log.Debug().Stringer("fault", fault).Msg("starting search")

	if !t.podem(fault) {
		return "", false, nil
	}

	out := make([]byte, len(t.sim.Circuit.Inputs))
	for i, pi := range t.sim.Circuit.Inputs {
		switch t.sim.State(pi) {
		case circuit.D:
			out[i] = '1'
		case circuit.Dbar:
			out[i] = '0'
		case circuit.Low:
			out[i] = '0'
		case circuit.High:
			out[i] = '1'
		default:
			out[i] = 'X'
		}
	}
	return string(out), true, nil
}

// podem is the classical recursive search: check for success or failure,
// pick an objective, backtrace it to a primary input, imply both ways.
func (t *TestGenerator) podem(fault circuit.Fault) bool {
	if t.anyOutputFaulty() {
		return true
	}
	if t.isFailure(fault) {
		return false
	}

	objNet, objValue := t.objective(fault)
	pi, piValue := t.backtrace(objNet, objValue)

	t.sim.SimulateInputAssignment(pi, piValue)
	if t.podem(fault) {
		return true
	}

	t.sim.SimulateInputAssignment(pi, circuit.Not(piValue))
	if t.podem(fault) {
		return true
	}

	t.sim.SimulateInputAssignment(pi, circuit.X)
	return false
}

// anyOutputFaulty reports whether any primary output currently carries D or
// D' — the search's success condition.
func (t *TestGenerator) anyOutputFaulty() bool {
	for _, po := range t.sim.Circuit.Outputs {
		if t.sim.State(po).IsFaulty() {
			return true
		}
	}
	return false
}

// isFailure reports whether the fault can no longer be activated or
// propagated: it is masked by the current PI commitments, or it is already
// activated but no gate remains in the D-frontier to carry it forward.
func (t *TestGenerator) isFailure(fault circuit.Fault) bool {
	state := t.sim.State(fault.Net)
	if state == fault.StuckAt {
		return true
	}
	if state != circuit.X && len(t.sim.DFrontier()) == 0 {
		return true
	}
	return false
}

// objective picks the next (net, value) target: activate the fault if it is
// not yet activated, else pick a gate off the D-frontier and drive one of
// its X inputs to that gate's non-controlling value.
func (t *TestGenerator) objective(fault circuit.Fault) (circuit.NetID, circuit.Logic) {
	if t.sim.State(fault.Net) == circuit.X {
		return fault.Net, circuit.Not(fault.StuckAt)
	}

	frontier := t.sim.DFrontier()
	g := frontier[0]
	nc, _ := g.Type.NonControllingValue()
	for _, in := range g.Inputs {
		if t.sim.State(in) == circuit.X {
			return in, nc
		}
	}
	// Invariant: a gate only enters the D-frontier while its output is X,
	// which requires at least one unassigned input.
	panic("podem: D-frontier gate has no X input")
}

// backtrace walks backward from (net, value) along X-valued wires, XOR-ing
// each traversed gate's inversion parity into the target value, until it
// reaches a primary input.
func (t *TestGenerator) backtrace(net circuit.NetID, value circuit.Logic) (circuit.NetID, circuit.Logic) {
	for {
		g, driven := t.sim.Circuit.DriverGate(net)
		if !driven {
			return net, value
		}

		if g.Type.InversionParity() == 1 {
			value = circuit.Not(value)
		}

		next := g.Inputs[0]
		for _, in := range g.Inputs {
			if t.sim.State(in) == circuit.X {
				next = in
				break
			}
		}
		net = next
	}
}
