package circuit

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
)

// Circuit is an immutable gate-level netlist: primary inputs and outputs in
// declaration order (which fixes vector bit positions), the gates in
// declaration order, and a precomputed topological evaluation order. Once
// built by Load, a Circuit is read-only; simulators hold a non-owning
// reference and never mutate it.
type Circuit struct {
	Inputs  []NetID
	Outputs []NetID
	Gates   []Gate

	nets      map[NetID]struct{}
	driverOf  map[NetID]int   // net -> index into Gates of the gate driving it
	consumers map[NetID][]int // net -> indices into Gates that consume it as an input
	evalOrder []int           // indices into Gates, topologically sorted by output net
}

// Load builds a Circuit from an ordered sequence of netlist declarations,
// one per line: a gate "TYPE in1 [in2 ...] out" (TYPE one of INV, BUF, AND,
// OR, NAND, NOR), or a port list "INPUT n1 n2 ... -1" / "OUTPUT n1 n2 ... -1".
// Blank lines are skipped. Load returns a *NetlistFormatError for any
// violation of the circuit invariants.
func Load(lines []string) (*Circuit, error) {
	c := &Circuit{
		nets:      map[NetID]struct{}{},
		driverOf:  map[NetID]int{},
		consumers: map[NetID][]int{},
	}

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		kw := tokens[0]

		switch kw {
		case "INPUT", "OUTPUT":
			ids, err := parseIOList(tokens[1:], lineNo)
			if err != nil {
				return nil, err
			}
			for _, id := range ids {
				c.nets[id] = struct{}{}
			}
			if kw == "INPUT" {
				c.Inputs = append(c.Inputs, ids...)
			} else {
				c.Outputs = append(c.Outputs, ids...)
			}

		default:
			if err := c.addGateLine(kw, tokens, lineNo, line); err != nil {
				return nil, err
			}
		}
	}

	if err := c.checkInvariants(); err != nil {
		return nil, err
	}

	order, err := c.topoOrder()
	if err != nil {
		return nil, err
	}
	c.evalOrder = order

	return c, nil
}

func parseIOList(tokens []string, lineNo int) ([]NetID, error) {
	if len(tokens) == 0 {
		return nil, &NetlistFormatError{Line: lineNo, Msg: "missing -1 terminator"}
	}
	var ids []NetID
	terminated := false
	for _, tok := range tokens {
		if tok == "-1" {
			terminated = true
			break
		}
		ids = append(ids, ParseNetToken(tok))
	}
	if !terminated {
		return nil, &NetlistFormatError{Line: lineNo, Msg: "missing -1 terminator"}
	}
	return ids, nil
}

func parseGateType(kw string) (GateType, bool) {
	switch kw {
	case "INV":
		return INV, true
	case "BUF":
		return BUF, true
	case "AND":
		return AND, true
	case "OR":
		return OR, true
	case "NAND":
		return NAND, true
	case "NOR":
		return NOR, true
	default:
		return 0, false
	}
}

func (c *Circuit) addGateLine(kw string, tokens []string, lineNo int, line string) error {
	gt, ok := parseGateType(kw)
	if !ok {
		return &NetlistFormatError{Line: lineNo, Token: kw, Msg: "unknown gate keyword"}
	}
	if len(tokens) < 3 {
		return &NetlistFormatError{Line: lineNo, Token: line, Msg: "gate declaration needs at least one input and an output"}
	}

	ioTokens := tokens[1:]
	outTok := ioTokens[len(ioTokens)-1]
	inTokens := ioTokens[:len(ioTokens)-1]

	if len(inTokens) < gt.MinInputs() {
		return &NetlistFormatError{Line: lineNo, Token: line, Msg: fmt.Sprintf("%s requires at least %d input(s)", gt, gt.MinInputs())}
	}
	if (gt == INV || gt == BUF) && len(inTokens) != 1 {
		return &NetlistFormatError{Line: lineNo, Token: line, Msg: fmt.Sprintf("%s takes exactly one input", gt)}
	}

	inputs := make([]NetID, len(inTokens))
	for i, tok := range inTokens {
		inputs[i] = ParseNetToken(tok)
		c.nets[inputs[i]] = struct{}{}
	}
	output := ParseNetToken(outTok)
	c.nets[output] = struct{}{}

	if _, driven := c.driverOf[output]; driven {
		return &NetlistFormatError{Line: lineNo, Token: outTok, Msg: "net already driven by another gate"}
	}

	idx := len(c.Gates)
	c.Gates = append(c.Gates, Gate{Type: gt, Inputs: inputs, Output: output})
	c.driverOf[output] = idx
	for _, in := range inputs {
		c.consumers[in] = append(c.consumers[in], idx)
	}
	return nil
}

func (c *Circuit) referenced(n NetID) bool {
	if _, ok := c.driverOf[n]; ok {
		return true
	}
	if _, ok := c.consumers[n]; ok {
		return true
	}
	return false
}

func (c *Circuit) checkInvariants() error {
	for _, pi := range c.Inputs {
		if _, isGateOutput := c.driverOf[pi]; isGateOutput {
			return &NetlistFormatError{Token: pi.String(), Msg: "primary input is also a gate output"}
		}
		if !c.referenced(pi) {
			return &NetlistFormatError{Token: pi.String(), Msg: "undeclared net in INPUT: not connected to any gate"}
		}
	}
	for _, po := range c.Outputs {
		if !c.referenced(po) {
			return &NetlistFormatError{Token: po.String(), Msg: "undeclared net in OUTPUT: not connected to any gate"}
		}
	}
	return nil
}

// topoOrder builds the induced net-level graph and returns the indices of
// Gates ordered so that every gate appears after all gates driving its
// inputs -- the evaluation order BaseSim uses to process each gate exactly
// once (Θ(|gates|) rather than Θ(|gates| · sweeps)).
func (c *Circuit) topoOrder() ([]int, error) {
	g := core.NewGraph(core.WithDirected(true))

	for n := range c.nets {
		if err := g.AddVertex(n.vertexKey()); err != nil {
			return nil, &NetlistFormatError{Msg: fmt.Sprintf("building circuit graph: %v", err)}
		}
	}

	type edgeKey struct{ from, to string }
	seenEdges := map[edgeKey]bool{}
	for _, gate := range c.Gates {
		for _, in := range gate.Inputs {
			key := edgeKey{in.vertexKey(), gate.Output.vertexKey()}
			if seenEdges[key] {
				continue
			}
			seenEdges[key] = true
			if _, err := g.AddEdge(key.from, key.to, 1); err != nil {
				return nil, &NetlistFormatError{Msg: fmt.Sprintf("building circuit graph: %v", err)}
			}
		}
	}

	order, err := dfs.TopologicalSort(g)
	if err != nil {
		if errors.Is(err, dfs.ErrCycleDetected) {
			return nil, &NetlistFormatError{Msg: "circuit contains a cycle; only combinational netlists are supported"}
		}
		return nil, &NetlistFormatError{Msg: fmt.Sprintf("topological sort failed: %v", err)}
	}

	pos := make(map[string]int, len(order))
	for i, v := range order {
		pos[v] = i
	}

	gateOrder := make([]int, len(c.Gates))
	for i := range gateOrder {
		gateOrder[i] = i
	}
	sort.Slice(gateOrder, func(i, j int) bool {
		return pos[c.Gates[gateOrder[i]].Output.vertexKey()] < pos[c.Gates[gateOrder[j]].Output.vertexKey()]
	})
	return gateOrder, nil
}

// EvalOrder returns the circuit's gates in topological (evaluation) order.
func (c *Circuit) EvalOrder() []Gate {
	out := make([]Gate, len(c.evalOrder))
	for i, idx := range c.evalOrder {
		out[i] = c.Gates[idx]
	}
	return out
}

// HasNet reports whether n is any net known to the circuit.
func (c *Circuit) HasNet(n NetID) bool {
	_, ok := c.nets[n]
	return ok
}

// Nets returns every net in the circuit, ascending-sorted.
func (c *Circuit) Nets() []NetID {
	out := make([]NetID, 0, len(c.nets))
	for n := range c.nets {
		out = append(out, n)
	}
	return SortNetIDs(out)
}

// IsGateOutput reports whether n is driven by some gate.
func (c *Circuit) IsGateOutput(n NetID) bool {
	_, ok := c.driverOf[n]
	return ok
}

// DriverGate returns the gate driving n, if any.
func (c *Circuit) DriverGate(n NetID) (Gate, bool) {
	idx, ok := c.driverOf[n]
	if !ok {
		return Gate{}, false
	}
	return c.Gates[idx], true
}

// ConsumerGates returns the gates that take n as an input, in declaration
// order.
func (c *Circuit) ConsumerGates(n NetID) []Gate {
	idxs := c.consumers[n]
	out := make([]Gate, len(idxs))
	for i, idx := range idxs {
		out[i] = c.Gates[idx]
	}
	return out
}

// InputIndex returns the position of a primary input in c.Inputs (and hence
// in any input-vector string), or -1 if n is not a primary input.
func (c *Circuit) InputIndex(n NetID) int {
	for i, pi := range c.Inputs {
		if pi == n {
			return i
		}
	}
	return -1
}
