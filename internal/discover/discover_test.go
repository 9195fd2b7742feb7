package discover

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiscoverBasic(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "app.py"), []byte("def main(): pass\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	res, err := Discover(ctx, dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(res.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(res.Files))
	}

	for _, f := range res.Files {
		if f.Path == "" {
			t.Error("expected non-empty Path")
		}
		if f.RelPath == "" {
			t.Error("expected non-empty RelPath")
		}
		if f.Language == "" {
			t.Error("expected non-empty Language")
		}
	}

	if res.Files[0].RelPath > res.Files[1].RelPath {
		t.Fatalf("expected lexicographic order, got %q before %q", res.Files[0].RelPath, res.Files[1].RelPath)
	}
}

func TestDiscoverCancellation(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, dir, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDiscoverSizeCap(t *testing.T) {
	dir := t.TempDir()

	big := strings.Repeat("x", 200)
	if err := os.WriteFile(filepath.Join(dir, "big.py"), []byte(big), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "small.py"), []byte("x = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := Discover(context.Background(), dir, &Options{MaxFileSize: 100})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].RelPath != "small.py" {
		t.Fatalf("expected only small.py to survive the size cap, got %+v", res.Files)
	}
	if len(res.Skipped) != 1 || res.Skipped[0].RelPath != "big.py" {
		t.Fatalf("expected big.py recorded as skipped, got %+v", res.Skipped)
	}
}

func TestDiscoverIgnoresDotGit(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".git", "config.go"), []byte("package x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.go"), []byte("package main\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	res, err := Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(res.Files) != 1 || res.Files[0].RelPath != "main.go" {
		t.Fatalf("expected .git contents excluded, got %+v", res.Files)
	}
}
