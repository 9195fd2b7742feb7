package graph

import (
	"fmt"

	"github.com/flytohub/flyto-indexer/internal/ixerr"
)

// CheckInvariants validates the structural invariants queries rely on:
// every edge has a matching reverse-index entry, every reverse-index entry
// has a matching forward edge, and no edge references a SymbolID missing
// from the symbol table. A violation means the reducer
// has a bug, not bad input — it aborts rather than attempting a silent
// repair during a query, per §7's invariant_violation policy.
func (g *Graph) CheckInvariants() error {
	for _, e := range g.Edges {
		from := e.From.String()
		to := e.To.String()

		if _, ok := g.Symbols[from]; !ok {
			return fmt.Errorf("%w: edge from unknown symbol %s", ixerr.InvariantViolation, from)
		}
		if _, ok := g.Symbols[to]; !ok {
			return fmt.Errorf("%w: edge to unknown symbol %s", ixerr.InvariantViolation, to)
		}

		reverse := g.Reverse[to]
		found := false
		for _, r := range reverse {
			if r == from {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: edge %s -> %s missing from reverse index", ixerr.InvariantViolation, from, to)
		}
	}

	for to, froms := range g.Reverse {
		for _, from := range froms {
			if !g.hasEdge(from, to) {
				return fmt.Errorf("%w: reverse index entry %s -> %s has no matching forward edge", ixerr.InvariantViolation, from, to)
			}
		}
	}

	return nil
}

func (g *Graph) hasEdge(from, to string) bool {
	for _, e := range g.Edges {
		if e.From.String() == from && e.To.String() == to {
			return true
		}
	}
	return false
}
