// Package backlog describes a team's backlog hierarchy and derives the
// work-item type ranks used to normalize roadmap trees.
//
// A [Configuration] has one requirement level (stories, bugs) and any number
// of portfolio levels (features, epics). Each [Level] carries a rank, where
// lower ranks sit higher in the tree, and the work-item types that belong to
// it. [RankMapFromConfig] folds the levels into a [RankMap], which the tree
// package consumes through its RankLookup interface.
//
// Configurations can be loaded from JSON, TOML, or YAML with [Load]:
//
//	cfg, err := backlog.Load("backlog.toml")
//	if err != nil {
//	    return err
//	}
//	ranks := cfg.RankMap()
//
// The TOML form uses snake_case keys:
//
//	[requirement_backlog]
//	name = "Stories"
//	rank = 2
//	work_item_types = [{ name = "User Story" }, { name = "Bug" }]
//
//	[[portfolio_backlogs]]
//	name = "Features"
//	rank = 1
//	work_item_types = [{ name = "Feature" }]
package backlog
