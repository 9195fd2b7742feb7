package manifest

import "testing"

func TestClassifyIncrementalScan(t *testing.T) {
	prior := Manifest{"a.py": 1, "b.py": 2, "c.py": 3}
	current := Manifest{"a.py": 1, "b.py": 99, "d.py": 4}

	d := Classify(prior, current)

	if len(d.Added) != 1 || d.Added[0] != "d.py" {
		t.Fatalf("expected d.py added, got %+v", d.Added)
	}
	if len(d.Modified) != 1 || d.Modified[0] != "b.py" {
		t.Fatalf("expected b.py modified, got %+v", d.Modified)
	}
	if len(d.Unchanged) != 1 || d.Unchanged[0] != "a.py" {
		t.Fatalf("expected a.py unchanged, got %+v", d.Unchanged)
	}
	if len(d.Deleted) != 1 || d.Deleted[0] != "c.py" {
		t.Fatalf("expected c.py deleted, got %+v", d.Deleted)
	}
}

func TestClassifyNoChanges(t *testing.T) {
	m := Manifest{"a.py": 1, "b.py": 2}
	d := Classify(m, m)
	if len(d.Added) != 0 || len(d.Modified) != 0 || len(d.Deleted) != 0 {
		t.Fatalf("expected zero changes for an unchanged workspace, got %+v", d)
	}
	if len(d.Unchanged) != 2 {
		t.Fatalf("expected 2 unchanged files, got %d", len(d.Unchanged))
	}
}
