package search

import (
	"reflect"
	"testing"
)

func TestTokenizeCamelCase(t *testing.T) {
	got := Tokenize("getUserById")
	want := []string{"getuserbyid", "get", "user", "by", "id"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTokenizeSnakeAndKebab(t *testing.T) {
	if got := Tokenize("get_user-name"); got[0] != "get_user-name" {
		t.Fatalf("expected original form preserved, got %v", got)
	}
}

func TestBM25SearchBoostOrdering(t *testing.T) {
	idx := NewIndex()
	idx.AddDocument("a", []string{"auth", "login", "session"})
	idx.AddDocument("b", []string{"auth", "login", "session"})
	idx.Finalize()

	hits := idx.Search("auth", 10)
	if len(hits) != 2 || hits[0].Score != hits[1].Score {
		t.Fatalf("expected a BM25 tie between a and b, got %+v", hits)
	}

	fileOf := map[string]string{"a": "auth.py", "b": "other.py"}
	events := []Event{{FilePath: "auth.py", Kind: EventOpenedFile}}

	ranked := RankWithBoost(hits, fileOf, events)
	if ranked[0].SymbolID != "a" {
		t.Fatalf("expected symbol a (recently opened file) to rank first, got %+v", ranked)
	}
}

func TestBM25RemoveDocument(t *testing.T) {
	idx := NewIndex()
	idx.AddDocument("a", []string{"foo", "bar"})
	idx.Finalize()
	idx.RemoveDocument("a")
	idx.Finalize()

	if idx.DocCount != 0 {
		t.Fatalf("expected doc count 0 after removal, got %d", idx.DocCount)
	}
	if len(idx.Postings) != 0 {
		t.Fatalf("expected empty postings after removal, got %+v", idx.Postings)
	}
}

func TestSessionRingBufferBounded(t *testing.T) {
	s := NewSession()
	for i := 0; i < SessionBufferSize+10; i++ {
		s.Record(EventOpenedFile, "f.py", "")
	}
	if got := len(s.Snapshot()); got != SessionBufferSize {
		t.Fatalf("expected buffer capped at %d, got %d", SessionBufferSize, got)
	}
}
