// Command flyto-index drives one scan or query against a workspace's
// .flyto-index/ directory. Flag-less os.Args parsing, grounded on the
// teacher's cmd/codebase-memory-mcp CLI subcommand style.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/flytohub/flyto-indexer/internal/ixerr"
	"github.com/flytohub/flyto-indexer/internal/query"
	"github.com/flytohub/flyto-indexer/internal/scan"
	"github.com/flytohub/flyto-indexer/internal/store"
)

var version = "dev"

// errUsage marks a bad-invocation error, mapped to exit code 1 rather
// than ixerr.ExitCode's taxonomy (which has no usage-error kind).
var errUsage = errors.New("usage error")

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("flyto-index", version)
		os.Exit(0)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "scan":
		err = runScan(os.Args[2:])
	case "query":
		err = runQuery(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}

	if errors.Is(err, errUsage) {
		os.Exit(1)
	}
	os.Exit(ixerr.ExitCode(err))
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  flyto-index scan <path> [project-name]\n")
	fmt.Fprintf(os.Stderr, "  flyto-index query <path> impact|references|search|file_info|apis [args...]\n")
}

func runScan(args []string) error {
	if len(args) < 1 {
		usage()
		return fmt.Errorf("%w: missing <path>", errUsage)
	}
	repoPath := args[0]
	project := filepath.Base(repoPath)
	if len(args) > 1 {
		project = args[1]
	}

	s, err := store.Open(filepath.Join(repoPath, store.DirName))
	if err != nil {
		return err
	}

	summary, err := scan.Run(context.Background(), s, scan.Options{Project: project, RepoPath: repoPath})
	if err != nil {
		return err
	}

	log.Printf("scan complete: added=%d modified=%d deleted=%d parse_failed=%d duration_ms=%d",
		summary.Added, summary.Modified, summary.Deleted, summary.ParseFailed, summary.DurationMS)
	return nil
}

func runQuery(args []string) error {
	if len(args) < 2 {
		usage()
		return fmt.Errorf("%w: missing <path> and query kind", errUsage)
	}
	repoPath, kind, rest := args[0], args[1], args[2:]

	s, err := store.Open(filepath.Join(repoPath, store.DirName))
	if err != nil {
		return err
	}
	snap, err := s.LoadAll()
	if err != nil {
		return err
	}
	engine := query.New(snap.Graph, snap.BM25, snap.Content)

	var result any
	switch kind {
	case "impact":
		if len(rest) < 1 {
			return fmt.Errorf("%w: impact requires a symbol id", errUsage)
		}
		result, err = engine.Impact(rest[0], 2)
	case "references":
		if len(rest) < 1 {
			return fmt.Errorf("%w: references requires a symbol id", errUsage)
		}
		result, err = engine.References(rest[0])
	case "search":
		if len(rest) < 1 {
			return fmt.Errorf("%w: search requires a query string", errUsage)
		}
		result = engine.Search(rest[0], 20)
	case "file_info":
		if len(rest) < 1 {
			return fmt.Errorf("%w: file_info requires a path", errUsage)
		}
		rec, ok := engine.FileInfo(filepath.Base(repoPath), rest[0])
		if !ok {
			return fmt.Errorf("%w: unknown file %q", ixerr.InputError, rest[0])
		}
		result = rec
	case "apis":
		result = engine.APIs()
	default:
		usage()
		return fmt.Errorf("%w: unknown query kind %q", errUsage, kind)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
