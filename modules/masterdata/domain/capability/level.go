// Package capability holds the competency-rating scale: a small
// ordered list of score bands that shares the versioned-dataset
// pattern with the hierarchy but is otherwise independent of it.
package capability

import (
	"fmt"
	"sort"
	"strings"
)

// Level is one band of the rating scale. Score ranges across active
// levels must not overlap and every range needs min < max.
type Level struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	MinScore float64 `json:"minScore"`
	MaxScore float64 `json:"maxScore"`
	Color    string  `json:"color"`
	Order    int     `json:"order"`
	IsActive bool    `json:"isActive"`
}

// ValidateLevels checks each level and the pairwise range exclusivity
// of the whole scale.
func ValidateLevels(levels []Level) error {
	if levels == nil {
		return fmt.Errorf("capability levels must be present")
	}
	for _, level := range levels {
		if strings.TrimSpace(level.ID) == "" {
			return fmt.Errorf("capability level %q has no id", level.Label)
		}
		if strings.TrimSpace(level.Label) == "" {
			return fmt.Errorf("capability level %s has no label", level.ID)
		}
		if level.MinScore >= level.MaxScore {
			return fmt.Errorf("capability level %s: min score %.1f must be below max score %.1f",
				level.Label, level.MinScore, level.MaxScore)
		}
	}

	active := make([]Level, 0, len(levels))
	for _, level := range levels {
		if level.IsActive {
			active = append(active, level)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].MinScore < active[j].MinScore
	})
	for i := 1; i < len(active); i++ {
		if active[i].MinScore < active[i-1].MaxScore {
			return fmt.Errorf("capability levels %s and %s have overlapping score ranges",
				active[i-1].Label, active[i].Label)
		}
	}
	return nil
}

// LevelFor resolves a score to its active band, if any.
func LevelFor(levels []Level, score float64) (Level, bool) {
	for _, level := range levels {
		if level.IsActive && score >= level.MinScore && score < level.MaxScore {
			return level, true
		}
	}
	return Level{}, false
}
