package faultsim

import "github.com/jack-mil/atpg-toolkit/pkg/circuit"

// Coverage runs every vector in vectors through deductive fault simulation
// and folds the results against the full single stuck-at fault universe
// (every net, both polarities), returning how many of those faults were
// detected by at least one vector and which were not.
func Coverage(c *circuit.Circuit, vectors []string) (detected int, total int, undetected []circuit.Fault, err error) {
	universe := circuit.FaultSet{}
	for _, n := range c.Nets() {
		universe = universe.Add(circuit.NewFault(n, circuit.Low)).Add(circuit.NewFault(n, circuit.High))
	}

	covered := circuit.FaultSet{}
	fs := NewFaultSimulation(c)
	for _, v := range vectors {
		found, detErr := fs.DetectFaults(v)
		if detErr != nil {
			return 0, 0, nil, detErr
		}
		covered = covered.Union(found)
	}

	remaining := universe.Sub(covered)
	return len(covered), len(universe), remaining.Sorted(), nil
}
