package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
	"github.com/jack-mil/atpg-toolkit/pkg/sim"
)

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

func TestSimulateInputDeterministic(t *testing.T) {
	c := andCircuit(t)
	s := sim.NewSimulation(c)
	out1, err := s.SimulateInput("11")
	require.NoError(t, err)
	out2, err := s.SimulateInput("11")
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
	assert.Len(t, out1, len(c.Outputs))
}

func TestSimulateInputIndependenceAcrossInstances(t *testing.T) {
	c := andCircuit(t)
	s1 := sim.NewSimulation(c)
	s2 := sim.NewSimulation(c)
	out1, err := s1.SimulateInput("10")
	require.NoError(t, err)
	_, err = s1.SimulateInput("11")
	require.NoError(t, err)
	out2, err := s2.SimulateInput("10")
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestSimulateInputRejectsX(t *testing.T) {
	c := andCircuit(t)
	s := sim.NewSimulation(c)
	_, err := s.SimulateInput("1X")
	require.Error(t, err)
}

func TestSimulateInputRejectsWrongLength(t *testing.T) {
	c := andCircuit(t)
	s := sim.NewSimulation(c)
	_, err := s.SimulateInput("1")
	require.Error(t, err)
}

func TestSimulateInputResultsAnd(t *testing.T) {
	c := andCircuit(t)
	s := sim.NewSimulation(c)
	out, err := s.SimulateInput("11")
	require.NoError(t, err)
	assert.Equal(t, "1", out)

	out, err = s.SimulateInput("10")
	require.NoError(t, err)
	assert.Equal(t, "0", out)
}
