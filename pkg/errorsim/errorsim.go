// Package errorsim implements ErrorSim: a forward simulator extended with a
// single target fault that injects D/D' on write, plus the D-frontier
// tracking PODEM drives its search from.
package errorsim

import (
	"github.com/rs/zerolog"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
	"github.com/jack-mil/atpg-toolkit/pkg/sim"
	"github.com/jack-mil/atpg-toolkit/pkg/utils"
)

// ErrorSim extends BaseSim with a mutable target fault. Every SetState call
// goes through D-injection: a write of High on the fault's net while the
// fault is stuck-at-0 becomes D, and a write of Low while stuck-at-1 becomes
// D'. Writes to any other net, or values already carrying fault influence,
// pass through unchanged.
type ErrorSim struct {
	*sim.BaseSim
	fault circuit.Fault
	log   zerolog.Logger
}

// NewErrorSim builds an ErrorSim over c with no target fault set; call
// StartState before using it.
func NewErrorSim(c *circuit.Circuit) *ErrorSim {
	e := &ErrorSim{
		BaseSim: sim.NewBaseSim(c),
		log:     utils.NewLogger(zerolog.Disabled).With().Str("component", "errorsim").Logger(),
	}
	e.BaseSim.SetInjector(e.injectFault)
	return e
}

// WithLogger attaches a logger and returns the ErrorSim for chaining.
func (e *ErrorSim) WithLogger(log zerolog.Logger) *ErrorSim {
	e.log = log.With().Str("component", "errorsim").Logger()
	e.BaseSim.WithLogger(e.log)
	return e
}

// Fault returns the current target fault.
func (e *ErrorSim) Fault() circuit.Fault { return e.fault }

// injectFault is installed as e.BaseSim's Inject hook, so every SetState
// call made anywhere — directly or promoted through MakeImplications and
// Simulate — is put through D-injection on the target fault's net.
func (e *ErrorSim) injectFault(net circuit.NetID, value circuit.Logic) circuit.Logic {
	if net == e.fault.Net {
		if value == circuit.High && e.fault.StuckAt == circuit.Low {
			return circuit.D
		}
		if value == circuit.Low && e.fault.StuckAt == circuit.High {
			return circuit.Dbar
		}
	}
	return value
}

// StartState sets the target fault, clears all state, and seeds every
// primary input to X.
func (e *ErrorSim) StartState(fault circuit.Fault) {
	e.fault = fault
	e.Reset()
	for _, pi := range e.Circuit.Inputs {
		e.SetState(pi, circuit.X)
	}
}

// SimulateInputAssignment is PODEM's incremental-assignment primitive: it
// snapshots every primary input's current value, clears all state, restores
// those PI values, overwrites pi to value (through D-injection), then
// forward-simulates.
func (e *ErrorSim) SimulateInputAssignment(pi circuit.NetID, value circuit.Logic) {
	snapshot := make(map[circuit.NetID]circuit.Logic, len(e.Circuit.Inputs))
	for _, p := range e.Circuit.Inputs {
		snapshot[p] = e.State(p)
	}
	e.Reset()
	for _, p := range e.Circuit.Inputs {
		if p == pi {
			continue
		}
		e.SetState(p, snapshot[p])
	}
	e.SetState(pi, value)
	e.MakeImplications()
}

// DFrontier returns the gates whose output is currently X but which have at
// least one input carrying D or D'.
func (e *ErrorSim) DFrontier() []circuit.Gate {
	var frontier []circuit.Gate
	for _, g := range e.Circuit.Gates {
		if e.State(g.Output) != circuit.X {
			continue
		}
		for _, in := range g.Inputs {
			if e.State(in).IsFaulty() {
				frontier = append(frontier, g)
				break
			}
		}
	}
	return frontier
}
