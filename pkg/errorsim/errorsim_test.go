package errorsim_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
	"github.com/jack-mil/atpg-toolkit/pkg/errorsim"
)

func splitLines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func andCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c, err := circuit.Load(splitLines(`
AND 1 2 3
INPUT 1 2 -1
OUTPUT 3 -1
`))
	require.NoError(t, err)
	return c
}

func TestStartStateSeedsInputsToX(t *testing.T) {
	c := andCircuit(t)
	e := errorsim.NewErrorSim(c)
	e.StartState(circuit.NewFault(circuit.NetFromInt(3), circuit.High))

	assert.Equal(t, circuit.X, e.State(circuit.NetFromInt(1)))
	assert.Equal(t, circuit.X, e.State(circuit.NetFromInt(2)))
}

func TestSimulateInputAssignmentInjectsD(t *testing.T) {
	c := andCircuit(t)
	e := errorsim.NewErrorSim(c)
	e.StartState(circuit.NewFault(circuit.NetFromInt(3), circuit.Low))

	e.SimulateInputAssignment(circuit.NetFromInt(1), circuit.High)
	e.SimulateInputAssignment(circuit.NetFromInt(2), circuit.High)

	assert.Equal(t, circuit.D, e.State(circuit.NetFromInt(3)))
}

func TestSimulateInputAssignmentInjectsDbar(t *testing.T) {
	c := andCircuit(t)
	e := errorsim.NewErrorSim(c)
	e.StartState(circuit.NewFault(circuit.NetFromInt(3), circuit.High))

	e.SimulateInputAssignment(circuit.NetFromInt(1), circuit.Low)
	e.SimulateInputAssignment(circuit.NetFromInt(2), circuit.Low)

	assert.Equal(t, circuit.Dbar, e.State(circuit.NetFromInt(3)))
}

func TestSimulateInputAssignmentPreservesOtherInputs(t *testing.T) {
	c := andCircuit(t)
	e := errorsim.NewErrorSim(c)
	e.StartState(circuit.NewFault(circuit.NetFromInt(3), circuit.High))

	e.SimulateInputAssignment(circuit.NetFromInt(1), circuit.High)
	e.SimulateInputAssignment(circuit.NetFromInt(2), circuit.High)

	assert.Equal(t, circuit.High, e.State(circuit.NetFromInt(1)))
}

func TestDFrontierTracksFaultyInputs(t *testing.T) {
	c := andCircuit(t)
	e := errorsim.NewErrorSim(c)
	e.StartState(circuit.NewFault(circuit.NetFromInt(1), circuit.High))

	e.SimulateInputAssignment(circuit.NetFromInt(1), circuit.Low)
	frontier := e.DFrontier()
	require.Len(t, frontier, 1)
	assert.Equal(t, circuit.AND, frontier[0].Type)
}

func TestDFrontierEmptyOnceOutputResolved(t *testing.T) {
	c := andCircuit(t)
	e := errorsim.NewErrorSim(c)
	e.StartState(circuit.NewFault(circuit.NetFromInt(3), circuit.Low))

	e.SimulateInputAssignment(circuit.NetFromInt(1), circuit.High)
	e.SimulateInputAssignment(circuit.NetFromInt(2), circuit.High)

	assert.Empty(t, e.DFrontier())
}
