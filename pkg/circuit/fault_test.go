package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
)

func TestFaultStringFormat(t *testing.T) {
	assert.Equal(t, "7-sa-0", circuit.NewFault(circuit.NetFromInt(7), circuit.Low).String())
	assert.Equal(t, "out-sa-1", circuit.NewFault(circuit.NetFromString("out"), circuit.High).String())
}

func TestNewFaultPanicsOnNonBinaryStuckAt(t *testing.T) {
	assert.Panics(t, func() {
		circuit.NewFault(circuit.NetFromInt(1), circuit.X)
	})
}

func TestFaultSetAlgebra(t *testing.T) {
	f1 := circuit.NewFault(circuit.NetFromInt(1), circuit.Low)
	f2 := circuit.NewFault(circuit.NetFromInt(2), circuit.Low)
	f3 := circuit.NewFault(circuit.NetFromInt(3), circuit.High)

	a := circuit.NewFaultSet(f1, f2)
	b := circuit.NewFaultSet(f2, f3)

	assert.Equal(t, circuit.NewFaultSet(f1, f2, f3), a.Union(b))
	assert.Equal(t, circuit.NewFaultSet(f2), a.Intersect(b))
	assert.Equal(t, circuit.NewFaultSet(f1), a.Sub(b))
	assert.True(t, a.Contains(f1))
	assert.False(t, a.Contains(f3))
}

func TestFaultSetAddDoesNotMutateReceiver(t *testing.T) {
	f1 := circuit.NewFault(circuit.NetFromInt(1), circuit.Low)
	f2 := circuit.NewFault(circuit.NetFromInt(2), circuit.Low)

	a := circuit.NewFaultSet(f1)
	b := a.Add(f2)

	assert.False(t, a.Contains(f2))
	assert.True(t, b.Contains(f2))
}

func TestUnionAllEmptyIsEmptySet(t *testing.T) {
	assert.Equal(t, circuit.FaultSet{}, circuit.UnionAll())
}

func TestFaultSetSortedOrder(t *testing.T) {
	f1 := circuit.NewFault(circuit.NetFromInt(2), circuit.High)
	f2 := circuit.NewFault(circuit.NetFromInt(2), circuit.Low)
	f3 := circuit.NewFault(circuit.NetFromInt(1), circuit.High)

	sorted := circuit.NewFaultSet(f1, f2, f3).Sorted()
	assert.Equal(t, []circuit.Fault{f3, f2, f1}, sorted)
}
