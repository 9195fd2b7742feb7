// Package graph assembles parsed files into the in-memory symbol graph:
// forward edges, a reverse index, and the unresolved-name bucket the
// resolver falls back to. The reducer goroutine in internal/scan is the
// graph's only writer; queries read a snapshot.
package graph

import (
	"sort"

	"github.com/flytohub/flyto-indexer/internal/symbol"
)

// Graph is the reducer's owned state: every symbol, every file, every
// edge, and the reverse index kept consistent with it.
type Graph struct {
	Symbols    map[string]symbol.Record // keyed by SymbolID.String()
	Files      map[string]symbol.FileRecord
	Edges      []symbol.Edge
	Reverse    map[string][]string // to -> [from, ...]
	Unresolved map[string][]string // name -> candidate SymbolID strings
	Projects   map[string]symbol.Project
	Routes     []symbol.RouteDecl
	Calls      []symbol.CallSite
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Symbols:    make(map[string]symbol.Record),
		Files:      make(map[string]symbol.FileRecord),
		Reverse:    make(map[string][]string),
		Unresolved: make(map[string][]string),
		Projects:   make(map[string]symbol.Project),
	}
}

// fileKey identifies a file across projects: project + path, since
// SymbolID scoping is per-project but the manifest is workspace-wide.
func fileKey(project, path string) string {
	return project + ":" + path
}

// FileSymbols returns the SymbolIDs a file currently defines, or nil if
// the file is unknown. Callers that need to retract a file's old bodies
// from the search index or content store before a ReplaceFile should read
// this first.
func (g *Graph) FileSymbols(project, path string) []symbol.ID {
	return g.Files[fileKey(project, path)].Symbols
}

// AddFile inserts a newly-parsed file's symbols, superseding nothing (the
// caller must have already removed any prior version via RemoveFile).
func (g *Graph) AddFile(file symbol.FileRecord, records []symbol.Record) {
	g.Files[fileKey(file.Project, file.Path)] = file
	for _, rec := range records {
		g.Symbols[rec.ID.String()] = rec
	}
	g.Routes = append(g.Routes, file.DefinedRoutes...)
	g.Calls = append(g.Calls, file.OutboundCalls...)
}

// ReplaceFile removes the prior version of a file (if any) before adding
// the new one, satisfying the invariant that modifying a file first
// retracts every edge it used to originate.
func (g *Graph) ReplaceFile(file symbol.FileRecord, records []symbol.Record) {
	g.RemoveFile(file.Project, file.Path)
	g.AddFile(file, records)
}

// RemoveFile deletes every symbol a file defined, every edge originating
// from those symbols, and compacts the reverse index and unresolved bucket
// accordingly. Edges pointing AT a deleted symbol become unresolved names
// rather than dangling IDs, per the spec's deletion invariant.
func (g *Graph) RemoveFile(project, path string) {
	key := fileKey(project, path)
	file, ok := g.Files[key]
	if !ok {
		return
	}

	deleted := make(map[string]bool, len(file.Symbols))
	for _, id := range file.Symbols {
		deleted[id.String()] = true
		delete(g.Symbols, id.String())
	}

	for name, candidates := range g.Unresolved {
		var kept []string
		for _, c := range candidates {
			if !deleted[c] {
				kept = append(kept, c)
			}
		}
		g.Unresolved[name] = kept
	}

	var keptEdges []symbol.Edge
	for _, e := range g.Edges {
		from := e.From.String()
		to := e.To.String()
		if deleted[from] {
			removeFromSlice(g.Reverse, to, from)
			continue
		}
		if deleted[to] {
			g.Unresolved[e.To.Name] = g.candidatesNamed(e.To.Name, deleted)
			removeFromSlice(g.Reverse, to, from)
			continue
		}
		keptEdges = append(keptEdges, e)
	}
	g.Edges = keptEdges

	g.Routes = filterRoutes(g.Routes, func(r symbol.RouteDecl) bool { return !deleted[r.HandlerSymbol.String()] })
	g.Calls = filterCalls(g.Calls, func(c symbol.CallSite) bool { return c.File != path })

	delete(g.Files, key)
}

// candidatesNamed returns the SymbolIDs (other than those in deleted) that
// still define name, so a retracted edge's target can be re-offered to the
// resolver instead of leaving a bogus entry behind.
func (g *Graph) candidatesNamed(name string, deleted map[string]bool) []string {
	var candidates []string
	for id, rec := range g.Symbols {
		if rec.ID.Name == name && !deleted[id] {
			candidates = append(candidates, id)
		}
	}
	sort.Strings(candidates)
	return candidates
}

func removeFromSlice(m map[string][]string, key, value string) {
	list := m[key]
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		delete(m, key)
	} else {
		m[key] = out
	}
}

func filterRoutes(routes []symbol.RouteDecl, keep func(symbol.RouteDecl) bool) []symbol.RouteDecl {
	var out []symbol.RouteDecl
	for _, r := range routes {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func filterCalls(calls []symbol.CallSite, keep func(symbol.CallSite) bool) []symbol.CallSite {
	var out []symbol.CallSite
	for _, c := range calls {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// AddEdge records a forward edge and its reverse-index entry together, so
// the two invariants ("every forward edge has an inverse entry" and
// "both are written or neither is") hold by construction.
func (g *Graph) AddEdge(e symbol.Edge) {
	g.Edges = append(g.Edges, e)
	to := e.To.String()
	g.Reverse[to] = append(g.Reverse[to], e.From.String())
}

// MarkUnresolved records a name with multiple (or zero) same-name
// candidates; per spec, no edge is ever emitted for it.
func (g *Graph) MarkUnresolved(name string, candidates []string) {
	sort.Strings(candidates)
	g.Unresolved[name] = candidates
}

// SortedSymbolIDs returns every symbol ID string in lexicographic order,
// the ordering §5 requires for deterministic on-disk output.
func (g *Graph) SortedSymbolIDs() []string {
	ids := make([]string, 0, len(g.Symbols))
	for id := range g.Symbols {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
