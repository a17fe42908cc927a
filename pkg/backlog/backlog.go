package backlog

import (
	"fmt"

	"github.com/matzehuels/epicroadmap/pkg/errors"
)

// WorkItemType names a work-item type that belongs to a backlog level.
type WorkItemType struct {
	Name string `json:"name" toml:"name" yaml:"name"`
}

// Level is one tier of the backlog hierarchy.
type Level struct {
	ID            string         `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`
	Name          string         `json:"name" toml:"name" yaml:"name"`
	Rank          int            `json:"rank" toml:"rank" yaml:"rank"`
	WorkItemTypes []WorkItemType `json:"workItemTypes" toml:"work_item_types" yaml:"workItemTypes"`
}

// TypeNames returns the names of the level's work-item types in order.
func (l Level) TypeNames() []string {
	names := make([]string, len(l.WorkItemTypes))
	for i, w := range l.WorkItemTypes {
		names[i] = w.Name
	}
	return names
}

// Configuration is a team's backlog hierarchy: one requirement level
// (stories, bugs) plus any number of portfolio levels (features, epics).
type Configuration struct {
	RequirementBacklog Level   `json:"requirementBacklog" toml:"requirement_backlog" yaml:"requirementBacklog"`
	PortfolioBacklogs  []Level `json:"portfolioBacklogs" toml:"portfolio_backlogs" yaml:"portfolioBacklogs"`
}

// Levels returns the requirement level followed by the portfolio levels in
// their configured order. This is the order in which ranks are assigned.
func (c *Configuration) Levels() []Level {
	if c == nil {
		return nil
	}
	levels := make([]Level, 0, 1+len(c.PortfolioBacklogs))
	levels = append(levels, c.RequirementBacklog)
	return append(levels, c.PortfolioBacklogs...)
}

// RankMap returns the work-item type ranks of c. See [RankMapFromConfig].
func (c *Configuration) RankMap() RankMap { return RankMapFromConfig(c) }

// Validate rejects levels without work-item types and malformed type names.
// A configuration whose requirement level is unset and which has no
// portfolio levels is empty and valid; it ranks nothing. A declared level
// without types is always an error.
func (c *Configuration) Validate() error {
	if c == nil || c.isEmpty() {
		return nil
	}
	for _, l := range c.Levels() {
		label := l.Name
		if label == "" {
			label = fmt.Sprintf("rank %d", l.Rank)
		}
		if len(l.WorkItemTypes) == 0 {
			return errors.New(errors.ErrCodeInvalidBacklog, "backlog level %q has no work item types", label)
		}
		for _, w := range l.WorkItemTypes {
			if err := errors.ValidateTypeName(w.Name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidBacklog, err, "backlog level %q", label)
			}
		}
	}
	return nil
}

func (c *Configuration) isEmpty() bool {
	return c.RequirementBacklog.isZero() && len(c.PortfolioBacklogs) == 0
}

func (l Level) isZero() bool {
	return l.ID == "" && l.Name == "" && l.Rank == 0 && len(l.WorkItemTypes) == 0
}

// Default returns the stock Agile process hierarchy:
// Epics (0) > Features (1) > Stories (2).
func Default() *Configuration {
	return &Configuration{
		RequirementBacklog: Level{
			ID:            "Microsoft.RequirementCategory",
			Name:          "Stories",
			Rank:          2,
			WorkItemTypes: []WorkItemType{{Name: "User Story"}, {Name: "Bug"}},
		},
		PortfolioBacklogs: []Level{
			{
				ID:            "Microsoft.FeatureCategory",
				Name:          "Features",
				Rank:          1,
				WorkItemTypes: []WorkItemType{{Name: "Feature"}},
			},
			{
				ID:            "Microsoft.EpicCategory",
				Name:          "Epics",
				Rank:          0,
				WorkItemTypes: []WorkItemType{{Name: "Epic"}},
			},
		},
	}
}
