package store

import (
	"github.com/flytohub/flyto-indexer/internal/graph"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

// indexVersion is the on-disk schema version written into every index.json.
const indexVersion = "1.0.0"

// indexDoc is the top-level index.json shape from §6, plus one addition:
// "files" carries the per-file records (imports, language, content hash)
// that file_info() and incremental rescans need but the documented schema
// has no slot for. The forward-compatibility rule ("unknown top-level
// keys are ignored") covers a reader that doesn't know about it.
type indexDoc struct {
	Projects   []symbol.Project             `json:"projects"`
	Symbols    map[string]symbol.Record     `json:"symbols"`
	Edges      []symbol.Edge                `json:"edges"`
	Reverse    map[string][]string          `json:"reverse"`
	Unresolved map[string][]string          `json:"unresolved"`
	APIs       []symbol.RouteDecl           `json:"apis"`
	Calls      []symbol.CallSite            `json:"calls"`
	Files      map[string]symbol.FileRecord `json:"files"`
	Version    string                       `json:"version"`
}

func toIndexDoc(g *graph.Graph) indexDoc {
	projects := make([]symbol.Project, 0, len(g.Projects))
	for _, p := range g.Projects {
		projects = append(projects, p)
	}
	return indexDoc{
		Projects:   projects,
		Symbols:    g.Symbols,
		Edges:      g.Edges,
		Reverse:    g.Reverse,
		Unresolved: g.Unresolved,
		APIs:       g.Routes,
		Calls:      g.Calls,
		Files:      g.Files,
		Version:    indexVersion,
	}
}

// applyIndexDoc populates a fresh graph from a decoded index.json,
// including the per-file records carried under "files".
func applyIndexDoc(doc indexDoc, g *graph.Graph) {
	for _, p := range doc.Projects {
		g.Projects[p.Name] = p
	}
	for id, rec := range doc.Symbols {
		g.Symbols[id] = rec
	}
	g.Edges = append(g.Edges, doc.Edges...)
	for to, froms := range doc.Reverse {
		g.Reverse[to] = append(g.Reverse[to], froms...)
	}
	for name, cands := range doc.Unresolved {
		g.Unresolved[name] = append(g.Unresolved[name], cands...)
	}
	g.Routes = append(g.Routes, doc.APIs...)
	g.Calls = append(g.Calls, doc.Calls...)
	for key, file := range doc.Files {
		g.Files[key] = file
	}
}
