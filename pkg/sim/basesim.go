// Package sim implements the level-free forward evaluator (BaseSim) and its
// fault-free specialization (Simulation) that every higher simulator in this
// engine is built from.
package sim

import (
	"github.com/rs/zerolog"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
	"github.com/jack-mil/atpg-toolkit/pkg/utils"
)

// Inject is a write-time value transform a specialization can install to
// intercept every state write (ErrorSim uses this for D/D' injection). This
// is the "two distinct step functions selected at construction" shape the
// engine uses in place of virtual dispatch on its hot path.
type Inject func(net circuit.NetID, value circuit.Logic) circuit.Logic

// BaseSim holds a Circuit and a partial simulation state: a mapping from
// NetID to Logic where an absent key means X. It evaluates gates in the
// circuit's precomputed topological order, so a full pass costs Θ(|gates|)
// rather than Θ(|gates| · sweeps) as repeated whole-circuit rescanning
// would.
type BaseSim struct {
	Circuit *circuit.Circuit
	state   map[circuit.NetID]circuit.Logic
	inject  Inject
	log     zerolog.Logger
}

// NewBaseSim builds a BaseSim over c with a disabled logger; use WithLogger
// to attach one (the CLI front-end does this, library callers generally
// don't need to).
func NewBaseSim(c *circuit.Circuit) *BaseSim {
	return &BaseSim{
		Circuit: c,
		state:   map[circuit.NetID]circuit.Logic{},
		log:     utils.NewLogger(zerolog.Disabled).With().Str("component", "sim").Logger(),
	}
}

// WithLogger attaches a logger to an existing BaseSim and returns it for
// chaining.
func (b *BaseSim) WithLogger(log zerolog.Logger) *BaseSim {
	b.log = log.With().Str("component", "sim").Logger()
	return b
}

// State reads net's current value; absence means X.
func (b *BaseSim) State(net circuit.NetID) circuit.Logic {
	if v, ok := b.state[net]; ok {
		return v
	}
	return circuit.X
}

// SetState writes net's value, passing it through the installed Inject hook
// first if one was set via SetInjector.
func (b *BaseSim) SetState(net circuit.NetID, value circuit.Logic) {
	if b.inject != nil {
		value = b.inject(net, value)
	}
	b.state[net] = value
}

// SetInjector installs a write-time transform every subsequent SetState call
// (including those made internally by MakeImplications and Simulate) is
// passed through. Pass nil to remove it.
func (b *BaseSim) SetInjector(inject Inject) {
	b.inject = inject
}

// Reset empties the state map. Calling Reset twice in a row is equivalent
// to calling it once.
func (b *BaseSim) Reset() {
	b.state = map[circuit.NetID]circuit.Logic{}
}

// ready reports whether every input of g currently has an assigned value.
func (b *BaseSim) ready(g circuit.Gate) bool {
	for _, in := range g.Inputs {
		if _, ok := b.state[in]; !ok {
			return false
		}
	}
	return true
}

// MakeImplications evaluates every gate whose inputs are fully assigned, in
// the circuit's topological order, writing each gate's output as it goes so
// later gates in the same pass see it immediately. A single pass over the
// topological order is equivalent to repeating sweeps until quiescent,
// because no gate in the order depends on a gate that appears after it.
func (b *BaseSim) MakeImplications() {
	for _, g := range b.Circuit.EvalOrder() {
		if !b.ready(g) {
			continue
		}
		values := make([]circuit.Logic, len(g.Inputs))
		for i, in := range g.Inputs {
			values[i] = b.State(in)
		}
		out := g.Evaluate(values)
		b.log.Debug().Stringer("gate", logGate{g}).Stringer("value", out).Msg("evaluated gate")
		b.SetState(g.Output, out)
	}
}

// Simulate assigns the circuit's primary inputs from vector (in input-vector
// order) and runs implications to quiescence. It does not reset first; call
// Reset beforehand for a clean run.
func (b *BaseSim) Simulate(vector []circuit.Logic) error {
	if len(vector) != len(b.Circuit.Inputs) {
		return &circuit.InvalidVectorError{Msg: "vector length does not match the number of primary inputs"}
	}
	for i, pi := range b.Circuit.Inputs {
		b.SetState(pi, vector[i])
	}
	b.MakeImplications()
	return nil
}

type logGate struct{ g circuit.Gate }

func (lg logGate) String() string { return lg.g.Type.String() + "->" + lg.g.Output.String() }
