package store

import (
	"github.com/flytohub/flyto-indexer/internal/graph"
	"github.com/flytohub/flyto-indexer/internal/manifest"
	"github.com/flytohub/flyto-indexer/internal/search"
)

// Snapshot bundles everything a writer commits at the end of a scan.
type Snapshot struct {
	Manifest manifest.Manifest
	Graph    *graph.Graph
	BM25     *search.Index
	Content  map[string]string
}

// SaveAll commits manifest.json, index.json, bm25.json and content.jsonl,
// in that order, each via its own atomic rename. A crash between files
// leaves the directory in a state no worse than before this call started:
// every file on disk is either the prior commit or the new one, never a
// half-written one (§4.7, §5's "cancelled scan commits nothing partial").
func (s *Store) SaveAll(snap Snapshot) error {
	if err := writeJSONAtomic(s.path("manifest.json"), snap.Manifest); err != nil {
		return err
	}
	if err := writeJSONAtomic(s.path("index.json"), toIndexDoc(snap.Graph)); err != nil {
		return err
	}
	if err := writeJSONAtomic(s.path("bm25.json"), snap.BM25); err != nil {
		return err
	}
	if err := s.SaveContent(snap.Content); err != nil {
		return err
	}
	return nil
}

// LoadAll reads whatever is present into a fresh Snapshot. Missing files
// (first run) yield empty zero-value collections rather than errors.
func (s *Store) LoadAll() (Snapshot, error) {
	snap := Snapshot{
		Manifest: manifest.Manifest{},
		Graph:    graph.New(),
		BM25:     search.NewIndex(),
	}

	if _, err := readJSON(s.path("manifest.json"), &snap.Manifest); err != nil {
		return Snapshot{}, err
	}

	var doc indexDoc
	if _, err := readJSON(s.path("index.json"), &doc); err != nil {
		return Snapshot{}, err
	}
	applyIndexDoc(doc, snap.Graph)

	if _, err := readJSON(s.path("bm25.json"), snap.BM25); err != nil {
		return Snapshot{}, err
	}
	snap.BM25.Finalize()

	content, err := s.LoadContent()
	if err != nil {
		return Snapshot{}, err
	}
	snap.Content = content

	return snap, nil
}
