package circuit

// GateType is one of the six primitive combinational gates this engine
// understands. Each carries three derived attributes used throughout the
// simulators: minimum input arity, controlling value, and inversion parity.
type GateType int

const (
	INV GateType = iota
	BUF
	AND
	OR
	NAND
	NOR
)

func (t GateType) String() string {
	switch t {
	case INV:
		return "INV"
	case BUF:
		return "BUF"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NAND:
		return "NAND"
	case NOR:
		return "NOR"
	default:
		return "UNKNOWN"
	}
}

// MinInputs is the minimum input arity: 1 for INV/BUF, 2 for the rest.
func (t GateType) MinInputs() int {
	if t == INV || t == BUF {
		return 1
	}
	return 2
}

// ControllingValue returns the gate's controlling value and true, or an
// undefined Logic and false for INV/BUF which have none.
func (t GateType) ControllingValue() (Logic, bool) {
	switch t {
	case AND, NAND:
		return Low, true
	case OR, NOR:
		return High, true
	default:
		return X, false
	}
}

// NonControllingValue is the complement of ControllingValue, used by PODEM's
// backtrace to justify a gate's other inputs while propagating one input's D
// or D' to the output.
func (t GateType) NonControllingValue() (Logic, bool) {
	c, ok := t.ControllingValue()
	if !ok {
		return X, false
	}
	return Not(c), true
}

// InversionParity is 0 for AND/OR/BUF, 1 for NAND/NOR/INV. PODEM's backtrace
// XORs this into the running objective value at every gate it walks through.
func (t GateType) InversionParity() int {
	switch t {
	case NAND, NOR, INV:
		return 1
	default:
		return 0
	}
}

// Gate is an immutable record: a type, an ordered tuple of input NetIDs, and
// a single output NetID. Two gates are equal iff all three fields are equal.
type Gate struct {
	Type   GateType
	Inputs []NetID
	Output NetID
}

// Equal reports whether g and other have the same type, inputs (in order),
// and output.
func (g Gate) Equal(other Gate) bool {
	if g.Type != other.Type || g.Output != other.Output || len(g.Inputs) != len(other.Inputs) {
		return false
	}
	for i := range g.Inputs {
		if g.Inputs[i] != other.Inputs[i] {
			return false
		}
	}
	return true
}

// Evaluate computes the gate's output from its input values, which must be
// given in the same order as g.Inputs and fully assigned (no caller is
// allowed to invoke Evaluate on partially-assigned inputs; doing so is a
// programmer error the readiness rule in pkg/sim exists to prevent).
func (g Gate) Evaluate(values []Logic) Logic {
	if len(values) != len(g.Inputs) {
		panic("circuit: Evaluate called with wrong number of input values")
	}
	switch g.Type {
	case INV:
		return Not(values[0])
	case BUF:
		return values[0]
	case AND:
		return And(values...)
	case NAND:
		return Not(And(values...))
	case OR:
		return Or(values...)
	case NOR:
		return Not(Or(values...))
	default:
		panic("circuit: unknown gate type")
	}
}
