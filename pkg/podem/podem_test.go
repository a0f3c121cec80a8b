package podem_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
	"github.com/jack-mil/atpg-toolkit/pkg/faultsim"
	"github.com/jack-mil/atpg-toolkit/pkg/podem"
)

func splitLines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

func mustLoad(t *testing.T, netlist string) *circuit.Circuit {
	t.Helper()
	c, err := circuit.Load(splitLines(netlist))
	require.NoError(t, err)
	return c
}

func andCircuit(t *testing.T) *circuit.Circuit {
	return mustLoad(t, `
AND 1 2 3
INPUT 1 2 -1
OUTPUT 3 -1
`)
}

// Either primary input forces the AND output to 0 on its own, so a minimal
// PODEM search only ever needs to assign one of them; the other stays X.
func TestGenerateTestAndOutputStuckAt1(t *testing.T) {
	c := andCircuit(t)
	tg := podem.NewTestGenerator(c)

	vector, ok, err := tg.GenerateTest(circuit.NewFault(circuit.NetFromInt(3), circuit.High))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, []string{"0X", "X0"}, vector)
}

func TestGenerateTestAndOutputStuckAt0(t *testing.T) {
	c := andCircuit(t)
	tg := podem.NewTestGenerator(c)

	vector, ok, err := tg.GenerateTest(circuit.NewFault(circuit.NetFromInt(3), circuit.Low))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "11", vector)
}

func TestGenerateTestAndInputStuckAt1(t *testing.T) {
	c := andCircuit(t)
	tg := podem.NewTestGenerator(c)

	vector, ok, err := tg.GenerateTest(circuit.NewFault(circuit.NetFromInt(1), circuit.High))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "01", vector)
}

// Fan-out reconvergence at the AND gate masks d's effect: whichever value d
// takes, the path through f/g is blocked by the other reconverging branch,
// so no vector can ever carry a D/D' to the single output i.
func TestGenerateTestUndetectableReconvergentFault(t *testing.T) {
	c := mustLoad(t, `
BUF a d
BUF a e
NAND b d f
OR c f g
AND g e i
INPUT a b c -1
OUTPUT i -1
`)
	tg := podem.NewTestGenerator(c)

	_, ok, err := tg.GenerateTest(circuit.NewFault(circuit.NetFromString("d"), circuit.High))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerateTestUnknownNet(t *testing.T) {
	c := andCircuit(t)
	tg := podem.NewTestGenerator(c)

	_, _, err := tg.GenerateTest(circuit.NewFault(circuit.NetFromInt(99), circuit.High))
	require.Error(t, err)
	var ine *circuit.InvalidNetError
	assert.ErrorAs(t, err, &ine)
}

// Any vector PODEM produces for a fault must actually detect that fault
// under deductive fault simulation: the two engines must agree.
func TestGenerateTestAgreesWithFaultSimulation(t *testing.T) {
	c := andCircuit(t)
	tg := podem.NewTestGenerator(c)
	fault := circuit.NewFault(circuit.NetFromInt(2), circuit.Low)

	vector, ok, err := tg.GenerateTest(fault)
	require.NoError(t, err)
	require.True(t, ok)

	vector = strings.ReplaceAll(vector, "X", "1")
	fs := faultsim.NewFaultSimulation(c)
	detected, err := fs.DetectFaults(vector)
	require.NoError(t, err)
	assert.True(t, detected.Contains(fault))
}
