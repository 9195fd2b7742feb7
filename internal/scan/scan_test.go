package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/flytohub/flyto-indexer/internal/store"
)

func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunIndexesNewFiles(t *testing.T) {
	repo := writeRepo(t, map[string]string{
		"app.py": "def handler():\n    return call_helper()\n\ndef call_helper():\n    return 1\n",
	})

	s, err := store.Open(filepath.Join(t.TempDir(), ".flyto-index"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	summary, err := Run(context.Background(), s, Options{Project: "demo", RepoPath: repo})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Added != 1 {
		t.Fatalf("expected 1 added file, got %+v", summary)
	}

	snap, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(snap.Graph.Symbols) != 2 {
		t.Fatalf("expected 2 symbols (handler, call_helper), got %+v", snap.Graph.Symbols)
	}
	if len(snap.Graph.Edges) != 1 {
		t.Fatalf("expected handler -> call_helper edge, got %+v", snap.Graph.Edges)
	}
}

func TestRunRenameRetractsOldEdge(t *testing.T) {
	dir := writeRepo(t, map[string]string{
		"app.py": "def foo():\n    return helper()\n\ndef helper():\n    return 1\n",
	})
	storeDir := filepath.Join(t.TempDir(), ".flyto-index")

	s, err := store.Open(storeDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := Run(context.Background(), s, Options{Project: "demo", RepoPath: dir}); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "app.py"),
		[]byte("def bar():\n    return helper()\n\ndef helper():\n    return 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s2, err := store.Open(storeDir)
	if err != nil {
		t.Fatalf("re-Open: %v", err)
	}
	if _, err := Run(context.Background(), s2, Options{Project: "demo", RepoPath: dir}); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	snap, err := s2.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if _, ok := snap.Graph.Symbols["demo:app.py:function:foo"]; ok {
		t.Fatal("expected foo's symbol to be gone after rename")
	}
	if _, ok := snap.Graph.Symbols["demo:app.py:function:bar"]; !ok {
		t.Fatalf("expected bar's symbol to exist after rename, got %+v", snap.Graph.Symbols)
	}
	if len(snap.Graph.Edges) != 1 {
		t.Fatalf("expected exactly 1 edge (bar -> helper), got %+v", snap.Graph.Edges)
	}
}

func TestRunCancelledScanCommitsNothing(t *testing.T) {
	repo := writeRepo(t, map[string]string{
		"app.py": "def handler():\n    return 1\n",
	})
	storeDir := filepath.Join(t.TempDir(), ".flyto-index")

	s, err := store.Open(storeDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, s, Options{Project: "demo", RepoPath: repo}); err == nil {
		t.Fatal("expected a cancelled run to return an error")
	}

	if _, err := os.Stat(filepath.Join(storeDir, "index.json")); !os.IsNotExist(err) {
		t.Fatalf("expected no index.json to be committed, stat err = %v", err)
	}
}
