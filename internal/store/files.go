package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flytohub/flyto-indexer/internal/ixerr"
)

// writeJSONAtomic marshals v and commits it to path via the §4.7 atomic
// rename recipe: write to path+".tmp" in the same directory, fsync, then
// rename onto the target. A reader can never observe a partial file.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", ixerr.IOError, filepath.Base(path), err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ixerr.IOError, tmp, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("%w: writing %s: %v", ixerr.IOError, tmp, err)
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
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: renaming %s onto %s: %v", ixerr.IOError, tmp, path, err)
	}
	return nil
}

// readJSON loads path into v. A missing file is not an error: callers
// treat an absent index.json/manifest.json/etc as an empty first run, per
// the §4.7 "readers tolerate the target being absent" rule.
func readJSON(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: reading %s: %v", ixerr.IOError, path, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: decoding %s: %v", ixerr.IOError, path, err)
	}
	return true, nil
}
