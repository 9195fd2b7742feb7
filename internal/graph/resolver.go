package graph

import (
	"sort"
	"strings"

	"github.com/flytohub/flyto-indexer/internal/symbol"
)

// Registry indexes every known symbol by simple name (the bare identifier a
// refs_out entry names) and by file, so Resolve can run the spec's
// three-tier lookup without scanning the whole symbol table per reference.
// Grounded on the same by-name / by-file indexing idea as a conventional
// symbol table, generalized across languages instead of one callee-name
// heuristic per language.
type Registry struct {
	byName map[string][]symbol.Record // simple name -> every symbol with that name
	byFile map[string][]symbol.Record // project:path -> every symbol defined there
}

// NewRegistry builds a Registry from the full, current symbol table.
func NewRegistry(symbols map[string]symbol.Record) *Registry {
	r := &Registry{byName: make(map[string][]symbol.Record), byFile: make(map[string][]symbol.Record)}
	for _, rec := range symbols {
		simple := simpleName(rec.ID.Name)
		r.byName[simple] = append(r.byName[simple], rec)
		r.byFile[fileKey(rec.ID.Project, rec.ID.Path)] = append(r.byFile[fileKey(rec.ID.Project, rec.ID.Path)], rec)
	}
	return r
}

func simpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Resolution is the outcome of resolving one refs_out name from one symbol.
type Resolution struct {
	Target     symbol.ID
	Confidence symbol.Confidence
	Ambiguous  bool
	Candidates []symbol.ID
}

// Resolve implements §4.4's three-tier resolution for a single reference
// name emitted by `from`, whose enclosing file is `file` (used for
// intra-file and import-qualified lookups).
func (r *Registry) Resolve(name string, from symbol.ID, file symbol.FileRecord) (Resolution, bool) {
	simple := simpleName(name)

	// Tier 1: intra-file binding, confidence=exact.
	if local := r.byFile[fileKey(from.Project, from.Path)]; len(local) > 0 {
		if cands := matchSimpleName(local, simple, from); len(cands) > 0 {
			return pickOrAmbiguous(cands, symbol.ConfidenceExact, from)
		}
	}

	// Tier 2: import-qualified binding, confidence=likely.
	if dotted := strings.SplitN(name, ".", 2); len(dotted) == 2 {
		for _, imp := range file.Imports {
			alias := imp.Alias
			if alias == "" {
				alias = simpleName(imp.Module)
			}
			if alias != dotted[0] {
				continue
			}
			candidates := r.byName[dotted[1]]
			var scoped []symbol.Record
			for _, c := range candidates {
				if strings.Contains(c.ID.Path, imp.Module) || strings.HasSuffix(imp.Module, c.ID.Path) {
					scoped = append(scoped, c)
				}
			}
			if len(scoped) > 0 {
				return pickOrAmbiguous(scoped, symbol.ConfidenceLikely, from)
			}
		}
	}

	// Tier 3: workspace-wide fallback if globally unique, confidence=heuristic.
	if candidates := r.byName[simple]; len(candidates) > 0 {
		filtered := excludeSelf(candidates, from)
		if len(filtered) == 1 {
			return Resolution{Target: filtered[0].ID, Confidence: symbol.ConfidenceHeuristic}, true
		}
		if len(filtered) > 1 {
			return Resolution{Ambiguous: true, Candidates: idsOf(filtered)}, false
		}
	}

	return Resolution{}, false
}

func matchSimpleName(records []symbol.Record, simple string, from symbol.ID) []symbol.Record {
	var out []symbol.Record
	for _, rec := range records {
		if rec.ID == from {
			continue
		}
		if simpleName(rec.ID.Name) == simple {
			out = append(out, rec)
		}
	}
	return out
}

func excludeSelf(records []symbol.Record, from symbol.ID) []symbol.Record {
	var out []symbol.Record
	for _, rec := range records {
		if rec.ID != from {
			out = append(out, rec)
		}
	}
	return out
}

func idsOf(records []symbol.Record) []symbol.ID {
	ids := make([]symbol.ID, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

// pickOrAmbiguous applies the tie-break rule when more than one candidate
// survives at the same confidence tier: same-project as the referrer over
// cross-project, then exported over non-exported, then lexicographic
// SymbolID. The chain always bottoms out at exactly one candidate —
// lexicographic order has no ties among distinct SymbolIDs — so a
// tier-1/tier-2 match never reaches the workspace-wide ambiguity the
// tier-3 fallback can produce.
func pickOrAmbiguous(candidates []symbol.Record, confidence symbol.Confidence, from symbol.ID) (Resolution, bool) {
	best := tieBreak(candidates, from)
	return Resolution{Target: best.ID, Confidence: confidence}, true
}

func tieBreak(candidates []symbol.Record, from symbol.ID) symbol.Record {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID.String() < candidates[j].ID.String() })

	var sameProject []symbol.Record
	for _, c := range candidates {
		if c.ID.Project == from.Project {
			sameProject = append(sameProject, c)
		}
	}
	pool := candidates
	if len(sameProject) > 0 {
		pool = sameProject
	}

	for _, c := range pool {
		if c.Exports {
			return c
		}
	}
	return pool[0]
}
