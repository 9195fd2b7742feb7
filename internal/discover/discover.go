// Package discover walks a repository tree and returns the source files the
// scan pipeline should parse, applying the same ignore-directory and
// ignore-suffix filtering regardless of caller.
package discover

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flytohub/flyto-indexer/internal/lang"
)

// IGNORE_PATTERNS are directory names to skip during discovery.
var IGNORE_PATTERNS = map[string]bool{
	".cache": true, ".claude": true, ".eclipse": true, ".eggs": true,
	".env": true, ".git": true, ".gradle": true, ".hg": true,
	".idea": true, ".maven": true, ".mypy_cache": true, ".nox": true,
	".npm": true, ".nyc_output": true, ".pnpm-store": true,
	".pytest_cache": true, ".qdrant_code_embeddings": true,
	".ruff_cache": true, ".svn": true, ".tmp": true, ".tox": true,
	".venv": true, ".vs": true, ".vscode": true, ".yarn": true,
	"__pycache__": true, "bin": true, "bower_components": true,
	"build": true, "coverage": true, "dist": true, "env": true,
	"htmlcov": true, "node_modules": true, "obj": true, "out": true,
	"Pods": true, "site-packages": true, "target": true, "temp": true,
	"tmp": true, "vendor": true, "venv": true,
}

// IGNORE_SUFFIXES are file suffixes to skip.
var IGNORE_SUFFIXES = map[string]bool{
	".tmp": true, "~": true, ".pyc": true, ".pyo": true,
	".o": true, ".a": true, ".so": true, ".dll": true, ".class": true,
}

// DefaultMaxFileSize is the size cap applied when Options.MaxFileSize is
// zero: files larger than this are reported as skipped rather than read,
// since a single pathological file shouldn't stall the whole scan.
const DefaultMaxFileSize = 1 << 20 // 1 MiB

// FileInfo represents a discovered source file.
type FileInfo struct {
	Path     string        // absolute path
	RelPath  string        // relative to repo root, slash-separated
	Language lang.Language // detected language
	Size     int64
}

// Skipped records a file discovery declined to include, and why.
type Skipped struct {
	RelPath string
	Reason  string
}

// Options configures file discovery.
type Options struct {
	IgnoreFile  string // path to an ignore file (defaults to "<root>/.gitignore")
	MaxFileSize int64  // per-file size cap in bytes; 0 means DefaultMaxFileSize
}

// Result is everything Discover learned about a repository tree.
type Result struct {
	Files   []FileInfo
	Skipped []Skipped
}

// shouldSkipDir returns true if the directory should be skipped during discovery.
func shouldSkipDir(name, rel string, extraIgnore []string) bool {
	if IGNORE_PATTERNS[name] {
		return true
	}
	return matchesAny(extraIgnore, name, rel)
}

func matchesAny(patterns []string, name, rel string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Discover walks a repository and returns every file in lexicographic path
// order the scan pipeline can attempt to parse, plus a record of what it
// chose to skip and why. Symlinks that resolve outside repoPath are refused
// rather than followed, since indexing content outside the declared root
// would make the manifest describe a tree larger than what the caller asked
// to scan.
func Discover(ctx context.Context, repoPath string, opts *Options) (Result, error) {
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return Result{}, err
	}
	repoPath, err = filepath.EvalSymlinks(repoPath)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	maxSize := DefaultMaxFileSize
	var ignoreFile string
	if opts != nil {
		if opts.MaxFileSize > 0 {
			maxSize = int(opts.MaxFileSize)
		}
		ignoreFile = opts.IgnoreFile
	}
	if ignoreFile == "" {
		ignoreFile = filepath.Join(repoPath, ".gitignore")
	}
	extraIgnore, _ := loadIgnoreFile(ignoreFile)

	var res Result

	err = filepath.Walk(repoPath, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(repoPath, path)
		rel = filepath.ToSlash(rel)

		if info.Mode()&os.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil || !isWithin(repoPath, target) {
				res.Skipped = append(res.Skipped, Skipped{RelPath: rel, Reason: "symlink escapes root"})
				return nil
			}
		}

		if info.IsDir() {
			if shouldSkipDir(info.Name(), rel, extraIgnore) {
				return filepath.SkipDir
			}
			return nil
		}

		for suffix := range IGNORE_SUFFIXES {
			if strings.HasSuffix(path, suffix) {
				return nil
			}
		}
		if matchesAny(extraIgnore, info.Name(), rel) {
			return nil
		}

		if info.Size() > int64(maxSize) {
			res.Skipped = append(res.Skipped, Skipped{RelPath: rel, Reason: fmt.Sprintf("exceeds %d byte cap", maxSize)})
			return nil
		}

		ext := filepath.Ext(path)
		l, ok := lang.ForExtensionLanguage(ext)
		if !ok {
			l, ok = sniffShebang(path)
		}
		if !ok {
			return nil
		}

		res.Files = append(res.Files, FileInfo{
			Path:     path,
			RelPath:  rel,
			Language: l,
			Size:     info.Size(),
		})
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	sort.Slice(res.Files, func(i, j int) bool { return res.Files[i].RelPath < res.Files[j].RelPath })
	return res, nil
}

// isWithin reports whether target is root or a descendant of root.
func isWithin(root, target string) bool {
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && rel != "")
}

// sniffShebang detects scripting languages from extensionless files by
// reading the first line, e.g. a repo's "bin/build" with no suffix.
func sniffShebang(path string) (lang.Language, bool) {
	if filepath.Ext(path) != "" {
		return "", false
	}
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	buf := make([]byte, 256)
	n, _ := f.Read(buf)
	line := string(buf[:n])
	if !strings.HasPrefix(line, "#!") {
		return "", false
	}
	switch {
	case strings.Contains(line, "python"):
		return lang.Python, true
	case strings.Contains(line, "lua"):
		return lang.Lua, true
	}
	return "", false
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, strings.TrimSuffix(line, "/"))
		}
	}
	return patterns, scanner.Err()
}
