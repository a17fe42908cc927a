package backlog

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// RankMap maps a work-item type name to the rank of its backlog level.
// It implements tree.RankLookup.
type RankMap map[string]int

// Rank returns the rank of typeName and whether the type is part of the
// hierarchy. A nil map ranks nothing.
func (m RankMap) Rank(typeName string) (int, bool) {
	r, ok := m[typeName]
	return r, ok
}

// Types returns the ranked type names ordered by rank, then name.
func (m RankMap) Types() []string {
	names := slices.Collect(maps.Keys(m))
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Or(cmp.Compare(m[a], m[b]), strings.Compare(a, b))
	})
	return names
}

// RankMapFromConfig folds the levels of cfg into a type-name → rank map.
//
// Levels are applied in [Configuration.Levels] order, requirement level
// first, then portfolio levels as configured. When a type is declared on
// more than one level the last one wins. A nil configuration yields an empty
// map.
func RankMapFromConfig(cfg *Configuration) RankMap {
	ranks := make(RankMap)
	for _, l := range cfg.Levels() {
		for _, w := range l.WorkItemTypes {
			ranks[w.Name] = l.Rank
		}
	}
	return ranks
}
