package search

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// SessionBufferSize is N in §4.6/§4.8: the ring buffer holds the last 128
// session events.
const SessionBufferSize = 128

// EventKind enumerates the session events that can feed a search boost.
type EventKind string

const (
	EventOpenedFile EventKind = "opened_file"
	EventEditedFile EventKind = "edited_file"
	EventSearched   EventKind = "searched"
)

// Event is one recorded session action.
type Event struct {
	ID       string    `json:"id"`
	Seq      uint64    `json:"seq"`
	Kind     EventKind `json:"kind"`
	FilePath string    `json:"file_path,omitempty"`
	Query    string    `json:"query,omitempty"`
}

// Session is a bounded, append-only FIFO of recent events. Append never
// blocks the caller on anything but a mutex, so a query cancellation can
// never corrupt it — the invariant §4.8 asks for.
type Session struct {
	mu     sync.Mutex
	events []Event
	seq    uint64
}

// NewSession returns an empty session tracker.
func NewSession() *Session {
	return &Session{}
}

// Record appends an event, evicting the oldest once the buffer is full.
func (s *Session) Record(kind EventKind, filePath, query string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	ev := Event{ID: uuid.NewString(), Seq: s.seq, Kind: kind, FilePath: filePath, Query: query}
	s.events = append(s.events, ev)
	if len(s.events) > SessionBufferSize {
		s.events = s.events[len(s.events)-SessionBufferSize:]
	}
	return ev
}

// Snapshot returns a read-only copy of the current buffer, newest last.
func (s *Session) Snapshot() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// recencyWeight decays linearly with buffer position: the most recent
// event (last in the slice) weighs 1.0, the oldest weighs close to 0.
func recencyWeight(position, total int) float64 {
	if total <= 1 {
		return 1.0
	}
	return float64(position+1) / float64(total)
}

// Boost computes the additive per-file boost from a session snapshot: the
// highest recency weight among a file's matching events, scaled by alpha.
// alpha defaults to 20% of the top BM25 score so the boost can reorder
// near-ties but never dominate ranking, per §4.6.
func Boost(events []Event, topScore float64) map[string]float64 {
	alpha := topScore * 0.2
	boosts := make(map[string]float64)
	total := len(events)
	for i, ev := range events {
		if ev.FilePath == "" {
			continue
		}
		w := alpha * recencyWeight(i, total)
		if w > boosts[ev.FilePath] {
			boosts[ev.FilePath] = w
		}
	}
	return boosts
}

// RankWithBoost re-scores BM25 hits by adding each hit's file boost, then
// re-sorts so boosted ties resolve deterministically (score desc, then
// SymbolID asc).
func RankWithBoost(hits []Hit, fileOf map[string]string, events []Event) []Hit {
	if len(hits) == 0 {
		return hits
	}
	boosts := Boost(events, hits[0].Score)
	out := make([]Hit, len(hits))
	copy(out, hits)
	for i := range out {
		if file, ok := fileOf[out[i].SymbolID]; ok {
			out[i].Score += boosts[file]
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].SymbolID < out[j].SymbolID
	})
	return out
}
