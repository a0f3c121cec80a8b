// Package faultsim implements deductive fault simulation: in a single
// forward pass over a pattern it computes, for every net, both the
// fault-free value and the set of single stuck-at faults that would change
// that net's value.
package faultsim

import (
	"github.com/rs/zerolog"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
	"github.com/jack-mil/atpg-toolkit/pkg/sim"
	"github.com/jack-mil/atpg-toolkit/pkg/utils"
)

// FaultSimulation extends BaseSim with a per-net fault-list map built up
// alongside the ordinary forward evaluation.
type FaultSimulation struct {
	*sim.BaseSim
	faultLists map[circuit.NetID]circuit.FaultSet
	log        zerolog.Logger
}

// NewFaultSimulation builds a FaultSimulation over c.
func NewFaultSimulation(c *circuit.Circuit) *FaultSimulation {
	return &FaultSimulation{
		BaseSim:    sim.NewBaseSim(c),
		faultLists: map[circuit.NetID]circuit.FaultSet{},
		log:        utils.NewLogger(zerolog.Disabled).With().Str("component", "faultsim").Logger(),
	}
}

// WithLogger attaches a logger and returns the FaultSimulation for chaining.
func (f *FaultSimulation) WithLogger(log zerolog.Logger) *FaultSimulation {
	f.log = log.With().Str("component", "faultsim").Logger()
	return f
}

// Reset clears both the inherited simulation state and the fault-list map.
func (f *FaultSimulation) Reset() {
	f.BaseSim.Reset()
	f.faultLists = map[circuit.NetID]circuit.FaultSet{}
}

// FaultList returns the fault list computed for net after a DetectFaults
// call; empty (never nil) if net has no propagated faults.
func (f *FaultSimulation) FaultList(net circuit.NetID) circuit.FaultSet {
	if fl, ok := f.faultLists[net]; ok {
		return fl
	}
	return circuit.FaultSet{}
}

// DetectFaults runs a fault-free-or-X vector (the alphabet {0,1,X}) through
// deductive fault simulation and returns the union of every primary output's
// fault list, then resets.
func (f *FaultSimulation) DetectFaults(vector string) (circuit.FaultSet, error) {
	defer f.Reset()

	if len(vector) != len(f.Circuit.Inputs) {
		return nil, &circuit.InvalidVectorError{Vector: vector, Msg: "length does not match the number of primary inputs"}
	}
	values := make([]circuit.Logic, len(vector))
	for i := 0; i < len(vector); i++ {
		v, ok := circuit.ParseLogicBit(vector[i])
		if !ok {
			return nil, &circuit.InvalidVectorError{Vector: vector, Msg: "fault simulation accepts only the alphabet {0,1,X}"}
		}
		values[i] = v
	}

	for i, pi := range f.Circuit.Inputs {
		f.SetState(pi, values[i])
		f.faultLists[pi] = seedFaultList(pi, values[i])
	}

	for _, g := range f.Circuit.EvalOrder() {
		f.propagate(g)
	}

	out := circuit.FaultSet{}
	for _, po := range f.Circuit.Outputs {
		out = out.Union(f.FaultList(po))
	}
	return out, nil
}

// seedFaultList gives a primary input its own fault list: the single fault
// that would flip it from its current defined value, or the empty set if
// its value is unknown (X inputs carry no fault information).
func seedFaultList(net circuit.NetID, v circuit.Logic) circuit.FaultSet {
	if !v.IsBinary() {
		return circuit.FaultSet{}
	}
	return circuit.NewFaultSet(circuit.NewFault(net, circuit.Not(v)))
}

// propagate implements §4.4's deductive-simulation law for one gate: split
// the gate's inputs into controlling and non-controlling sets relative to
// the fault-free value each one carries, intersect the controlling inputs'
// fault lists, subtract the non-controlling inputs' fault lists, then add
// the gate's own output fault (if its value is defined).
func (f *FaultSimulation) propagate(g circuit.Gate) {
	ready := true
	for _, in := range g.Inputs {
		if _, ok := f.faultLists[in]; !ok {
			ready = false
			break
		}
	}
	if !ready {
		return
	}

	values := make([]circuit.Logic, len(g.Inputs))
	for i, in := range g.Inputs {
		values[i] = f.State(in)
	}
	out := g.Evaluate(values)
	f.SetState(g.Output, out)

	controllingValue, hasControlling := g.Type.ControllingValue()

	var propagated circuit.FaultSet
	if !hasControlling {
		propagated = circuit.FaultSet{}
		for _, in := range g.Inputs {
			propagated = propagated.Union(f.faultLists[in])
		}
	} else {
		var controlling, nonControlling []circuit.NetID
		for _, in := range g.Inputs {
			if f.State(in) == controllingValue {
				controlling = append(controlling, in)
			} else {
				nonControlling = append(nonControlling, in)
			}
		}
		if len(controlling) == 0 {
			propagated = circuit.FaultSet{}
			for _, in := range g.Inputs {
				propagated = propagated.Union(f.faultLists[in])
			}
		} else {
			propagated = f.faultLists[controlling[0]]
			for _, in := range controlling[1:] {
				propagated = propagated.Intersect(f.faultLists[in])
			}
			excluded := circuit.FaultSet{}
			for _, in := range nonControlling {
				excluded = excluded.Union(f.faultLists[in])
			}
			propagated = propagated.Sub(excluded)
		}
	}

	if out.IsBinary() {
		propagated = propagated.Add(circuit.NewFault(g.Output, circuit.Not(out)))
	}
	f.faultLists[g.Output] = propagated
	f.log.Debug().Stringer("output", g.Output).Int("faults", len(propagated)).Msg("propagated fault list")
}
