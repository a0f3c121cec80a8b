// Package utils supplies the small ambient helpers that sit outside the core
// engine layers: fault-string parsing, a full-period random-pattern
// generator, and the zerolog logger factory every component derives a
// sub-logger from.
package utils

import (
	"fmt"
	"strings"

	"github.com/jack-mil/atpg-toolkit/pkg/circuit"
)

// StrToFault parses a fault string into a circuit.Fault. Two spellings are
// accepted: "net-sa-0"/"net-sa-1" and the whitespace-separated "net 0"/"net 1".
func StrToFault(s string) (circuit.Fault, error) {
	s = strings.TrimSpace(s)
	if net, sa, ok := strings.Cut(s, "-sa-"); ok {
		return buildFault(net, sa, s)
	}
	fields := strings.Fields(s)
	if len(fields) == 2 {
		return buildFault(fields[0], fields[1], s)
	}
	return circuit.Fault{}, fmt.Errorf("malformed fault string %q: want net-sa-0|1 or net 0|1", s)
}

func buildFault(netTok, saTok, original string) (circuit.Fault, error) {
	netTok = strings.TrimSpace(netTok)
	saTok = strings.TrimSpace(saTok)
	if netTok == "" {
		return circuit.Fault{}, fmt.Errorf("malformed fault string %q: missing net", original)
	}
	var stuckAt circuit.Logic
	switch saTok {
	case "0":
		stuckAt = circuit.Low
	case "1":
		stuckAt = circuit.High
	default:
		return circuit.Fault{}, fmt.Errorf("malformed fault string %q: stuck-at must be 0 or 1", original)
	}
	return circuit.NewFault(circuit.ParseNetToken(netTok), stuckAt), nil
}

// WriteTestVectors formats one generated test per fault as "<fault>: <bits>"
// lines, in the order the faults are given.
func WriteTestVectors(faults []circuit.Fault, tests map[circuit.Fault]string) []string {
	lines := make([]string, 0, len(faults))
	for _, f := range faults {
		bits, ok := tests[f]
		if !ok {
			bits = "(none)"
		}
		lines = append(lines, f.String()+": "+bits)
	}
	return lines
}
