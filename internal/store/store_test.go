package store

import (
	"path/filepath"
	"testing"

	"github.com/flytohub/flyto-indexer/internal/graph"
	"github.com/flytohub/flyto-indexer/internal/manifest"
	"github.com/flytohub/flyto-indexer/internal/search"
	"github.com/flytohub/flyto-indexer/internal/symbol"
)

func TestSaveAllLoadAllRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".flyto-index")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	g := graph.New()
	id := symbol.New("proj", "a.py", symbol.KindFunction, "handler")
	g.AddFile(symbol.FileRecord{Project: "proj", Path: "a.py", Symbols: []symbol.ID{id}}, []symbol.Record{
		{ID: id, Kind: symbol.KindFunction, Exports: true},
	})

	idx := search.NewIndex()
	idx.AddDocument(id.String(), []string{"handler", "handle"})
	idx.Finalize()

	snap := Snapshot{
		Manifest: manifest.Manifest{"a.py": 42},
		Graph:    g,
		BM25:     idx,
		Content:  map[string]string{id.String(): "def handler(): pass"},
	}

	if err := s.SaveAll(snap); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	loaded, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if loaded.Manifest["a.py"] != 42 {
		t.Fatalf("expected manifest hash 42, got %+v", loaded.Manifest)
	}
	if _, ok := loaded.Graph.Symbols[id.String()]; !ok {
		t.Fatalf("expected symbol %s to round-trip, got %+v", id, loaded.Graph.Symbols)
	}
	if loaded.Content[id.String()] != "def handler(): pass" {
		t.Fatalf("expected body to round-trip, got %q", loaded.Content[id.String()])
	}
	if loaded.BM25.DocCount != 1 {
		t.Fatalf("expected 1 bm25 doc, got %d", loaded.BM25.DocCount)
	}
}

func TestLoadAllMissingFilesYieldsEmptySnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".flyto-index")
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	snap, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll on empty directory should succeed, got %v", err)
	}
	if len(snap.Manifest) != 0 || len(snap.Graph.Symbols) != 0 || len(snap.Content) != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestLockContention(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".flyto-index")
	first, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Lock(); err != nil {
		t.Fatalf("first Lock: %v", err)
	}
	defer first.Unlock()

	second, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := second.Lock(); err == nil {
		t.Fatal("expected second writer to fail acquiring the lock")
	}
}
