// Package store persists the index to .flyto-index/ and guards concurrent
// writers with a directory-level advisory lock (§4.7, §5).
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/flytohub/flyto-indexer/internal/ixerr"
)

// DirName is the on-disk index directory created under the indexed
// workspace root.
const DirName = ".flyto-index"

// Store owns the .flyto-index/ directory and its writer lock. A Store must
// be opened once per writer process; readers load snapshots without one.
type Store struct {
	dir    string
	lock   *flock.Flock
	locked bool
}

// Open resolves dir (creating it if absent) and returns a handle. It does
// not itself take the writer lock — call Lock before mutating the
// directory.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating index directory %s: %v", ixerr.IOError, dir, err)
	}
	return &Store{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, "writer.lock")),
	}, nil
}

// Dir returns the index directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Lock acquires the exclusive writer lock, non-blocking. A held lock from
// another process surfaces as ixerr.LockContention, matching the
// index_locked exit code in §6.
func (s *Store) Lock() error {
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("%w: acquiring writer lock: %v", ixerr.IOError, err)
	}
	if !ok {
		return fmt.Errorf("%w: another writer holds %s", ixerr.LockContention, s.lock.Path())
	}
	s.locked = true
	return nil
}

// Unlock releases the writer lock. Safe to call even if Lock was never
// called or already failed.
func (s *Store) Unlock() error {
	if !s.locked {
		return nil
	}
	s.locked = false
	return s.lock.Unlock()
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
