package roadmap

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/epicroadmap/pkg/backlog"
	"github.com/matzehuels/epicroadmap/pkg/errors"
	"github.com/matzehuels/epicroadmap/pkg/observability"
	"github.com/matzehuels/epicroadmap/pkg/tree"
)

// Runner executes the pipeline and reports progress to its logger and the
// registered observability hooks.
//
// The Runner holds no results, so multiple goroutines can safely share one
// Runner with different inputs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run validates in, builds the raw tree, and normalizes it.
//
// The context is checked between stages; both stages are CPU-only and are
// not interrupted once started. A cyclic link set is reported as
// [errors.ErrCodeCycle] wrapping [tree.ErrCycle].
func (r *Runner) Run(ctx context.Context, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCanceled, err, "before build")
	}

	raw, stats := r.Build(ctx, in.Links, in.Scope())

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCanceled, err, "before normalize")
	}

	ranks := in.Configuration().RankMap()
	norm, normStats, err := r.Normalize(ctx, raw, tree.TypesOf(in.WorkItems), ranks)
	if err != nil {
		return nil, err
	}

	stats.NormalizedNodes = normStats.NormalizedNodes
	stats.PrunedNodes = normStats.PrunedNodes
	stats.NormalizeTime = normStats.NormalizeTime

	return &Result{
		Raw:        raw,
		Normalized: norm,
		Ranks:      ranks,
		Stats:      stats,
	}, nil
}

// Build runs the build stage alone.
func (r *Runner) Build(ctx context.Context, links []tree.Link, outOfScope tree.Set) (*tree.Tree, Stats) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(links))

	start := time.Now()
	raw := tree.Build(links, outOfScope)
	stats := Stats{
		LinkCount:     len(links),
		ExcludedLinks: tree.Excluded(links, outOfScope),
		RawNodes:      raw.Len(),
		BuildTime:     time.Since(start),
	}

	hooks.OnBuildComplete(ctx, stats.RawNodes, stats.ExcludedLinks, stats.BuildTime)
	r.Logger.Debug("built raw tree",
		"links", stats.LinkCount,
		"excluded", stats.ExcludedLinks,
		"nodes", stats.RawNodes,
		"duration", stats.BuildTime)
	return raw, stats
}

// Normalize runs the normalize stage alone.
func (r *Runner) Normalize(ctx context.Context, raw *tree.Tree, types tree.NodeTypes, ranks backlog.RankMap) (*tree.Tree, Stats, error) {
	hooks := observability.Pipeline()
	rawNodes := 0
	if raw != nil {
		rawNodes = raw.Len()
	}
	hooks.OnNormalizeStart(ctx, rawNodes)

	if len(types) == 0 {
		r.Logger.Warn("no work item types known, normalized tree is empty")
	}
	if len(ranks) == 0 {
		r.Logger.Warn("backlog configuration ranks no work item types")
	} else {
		r.Logger.Debug("ranked work item types", "types", ranks.Types())
	}

	start := time.Now()
	norm, err := tree.Normalize(raw, types, ranks)
	elapsed := time.Since(start)

	if err != nil {
		hooks.OnNormalizeComplete(ctx, 0, 0, elapsed, err)
		r.Logger.Error("normalize failed", "err", err)
		if stderrors.Is(err, tree.ErrCycle) {
			return nil, Stats{}, errors.Wrap(errors.ErrCodeCycle, err, "work item links form a cycle")
		}
		return nil, Stats{}, errors.Wrap(errors.ErrCodeInternal, err, "normalize")
	}

	stats := Stats{
		RawNodes:        rawNodes,
		NormalizedNodes: norm.Len(),
		NormalizeTime:   elapsed,
	}
	stats.PrunedNodes = max(rawNodes-stats.NormalizedNodes, 0)

	hooks.OnNormalizeComplete(ctx, stats.NormalizedNodes, stats.PrunedNodes, elapsed, nil)
	r.Logger.Info("normalized tree",
		"nodes", stats.NormalizedNodes,
		"pruned", stats.PrunedNodes,
		"duration", elapsed)
	return norm, stats, nil
}
