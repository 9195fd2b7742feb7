package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/flytohub/flyto-indexer/internal/ixerr"
)

// ContentEntry is one line of content.jsonl: a symbol's body text, kept
// out of index.json so a snapshot load doesn't have to hold every body in
// memory when only the graph shape is needed (§4.7).
type ContentEntry struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// SaveContent rewrites content.jsonl from scratch. §4.7 calls this
// "append+compact": callers append new/changed bodies to the in-memory
// map across a scan and call SaveContent once at the end, which is
// equivalent to an append followed by a compaction pass that drops bodies
// for deleted symbols.
func (s *Store) SaveContent(entries map[string]string) error {
	tmp := s.path("content.jsonl.tmp")
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ixerr.IOError, tmp, err)
	}
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := enc.Encode(ContentEntry{ID: id, Body: entries[id]}); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("%w: encoding content entry %s: %v", ixerr.IOError, id, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: flushing %s: %v", ixerr.IOError, tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: fsyncing %s: %v", ixerr.IOError, tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: closing %s: %v", ixerr.IOError, tmp, err)
	}
	return os.Rename(tmp, s.path("content.jsonl"))
}

// LoadContent reads content.jsonl into memory. A missing file yields an
// empty map, matching the "tolerate absent target" rule.
func (s *Store) LoadContent() (map[string]string, error) {
	f, err := os.Open(s.path("content.jsonl"))
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: opening content.jsonl: %v", ixerr.IOError, err)
	}
	defer f.Close()

	out := make(map[string]string)
	dec := json.NewDecoder(f)
	for dec.More() {
		var entry ContentEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("%w: decoding content.jsonl: %v", ixerr.IOError, err)
		}
		out[entry.ID] = entry.Body
	}
	return out, nil
}
