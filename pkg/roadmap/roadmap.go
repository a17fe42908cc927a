// Package roadmap runs the build → normalize pipeline that turns raw
// work-item links into a roadmap tree.
//
// This package wires the pure stages of the tree package to the backlog
// configuration, structured logging, and observability hooks so that the CLI
// and the HTTP API share one code path.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: index links into a raw tree, dropping out-of-scope work items
//  2. Normalize: rank work items by backlog level and rewrite the tree
//
// Every run recomputes both stages from its [Input]; nothing is cached.
//
// # Usage
//
//	runner := roadmap.NewRunner(logger)
//	result, err := runner.Run(ctx, roadmap.Input{
//	    Links:     links,
//	    WorkItems: items,
//	    Backlog:   backlog.Default(),
//	})
//	if err != nil {
//	    return err
//	}
//	render(result.Normalized)
package roadmap

import (
	"time"

	"github.com/matzehuels/epicroadmap/pkg/backlog"
	"github.com/matzehuels/epicroadmap/pkg/errors"
	"github.com/matzehuels/epicroadmap/pkg/tree"
)

// =============================================================================
// Input
// =============================================================================

// Input holds everything a pipeline run needs. It supports JSON
// serialization for files and API requests.
type Input struct {
	// Links are the parent/child relations from the work tracker.
	Links []tree.Link `json:"links"`

	// OutOfScope lists work items excluded from the roadmap, e.g. items
	// outside the team's subscribed iterations.
	OutOfScope []tree.ID `json:"outOfScope,omitempty"`

	// WorkItems supply the work-item type of every linked item.
	WorkItems []tree.WorkItem `json:"workItems"`

	// Backlog is the team's hierarchy. When nil, [backlog.Default] is used.
	Backlog *backlog.Configuration `json:"backlog,omitempty"`
}

// Validate rejects identifiers that cannot come from a work tracker:
// negative IDs anywhere, and work items claiming the virtual root ID.
// It also validates the backlog configuration when one is set.
func (in *Input) Validate() error {
	for i, l := range in.Links {
		if err := errors.ValidateLinkEndpoint(int(l.Parent())); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "link %d source", i)
		}
		if err := errors.ValidateLinkEndpoint(int(l.Child())); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "link %d target", i)
		}
	}
	for _, id := range in.OutOfScope {
		if err := errors.ValidateLinkEndpoint(int(id)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "out of scope list")
		}
	}
	for _, w := range in.WorkItems {
		if err := errors.ValidateWorkItemID(int(w.ID)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "work item %q", w.Title)
		}
	}
	return in.Backlog.Validate()
}

// Configuration returns the backlog configuration for the run, falling back
// to [backlog.Default].
func (in *Input) Configuration() *backlog.Configuration {
	if in.Backlog == nil {
		return backlog.Default()
	}
	return in.Backlog
}

// Scope returns OutOfScope as a set.
func (in *Input) Scope() tree.Set { return tree.NewSet(in.OutOfScope...) }

// Items indexes the work items by ID. Later duplicates win.
func (in *Input) Items() map[tree.ID]tree.WorkItem {
	items := make(map[tree.ID]tree.WorkItem, len(in.WorkItems))
	for _, w := range in.WorkItems {
		items[w.ID] = w
	}
	return items
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Raw is the tree indexed straight from the links.
	Raw *tree.Tree `json:"raw"`

	// Normalized is the tree rewritten to follow the backlog hierarchy.
	Normalized *tree.Tree `json:"normalized"`

	// Ranks is the work-item type rank map used for normalization.
	Ranks backlog.RankMap `json:"ranks"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LinkCount       int `json:"linkCount"`
	ExcludedLinks   int `json:"excludedLinks"`
	RawNodes        int `json:"rawNodes"`
	NormalizedNodes int `json:"normalizedNodes"`

	// PrunedNodes counts raw work items missing from the normalized tree:
	// subtrees cut at an unranked type, and items unreachable from Root.
	PrunedNodes int `json:"prunedNodes"`

	BuildTime     time.Duration `json:"buildTime"`
	NormalizeTime time.Duration `json:"normalizeTime"`
}
