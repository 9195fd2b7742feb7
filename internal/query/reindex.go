package query

import (
	"context"

	"github.com/flytohub/flyto-indexer/internal/scan"
	"github.com/flytohub/flyto-indexer/internal/store"
)

// ReindexResult mirrors §6's reindex() summary shape.
type ReindexResult struct {
	Added      int
	Modified   int
	Deleted    int
	DurationMS int64
}

// Reindex triggers a fresh scan and returns its summary. Callers should
// discard any Engine built from a prior LoadAll and build a new one from
// the post-scan snapshot, since Engine never refreshes itself.
func Reindex(ctx context.Context, s *store.Store, opts scan.Options) (ReindexResult, error) {
	summary, err := scan.Run(ctx, s, opts)
	if err != nil {
		return ReindexResult{}, err
	}
	return ReindexResult{
		Added:      summary.Added,
		Modified:   summary.Modified,
		Deleted:    summary.Deleted,
		DurationMS: summary.DurationMS,
	}, nil
}
