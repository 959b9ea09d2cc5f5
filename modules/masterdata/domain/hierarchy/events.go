package hierarchy

// MergeStats counts what one merge run did. A reused record increments
// a merged counter, never a created one.
type MergeStats struct {
	CreatedSegments      int `json:"createdSegments"`
	CreatedGroups        int `json:"createdGroups"`
	MergedGroups         int `json:"mergedGroups"`
	CreatedCategories    int `json:"createdCategories"`
	MergedCategories     int `json:"mergedCategories"`
	CreatedSubCategories int `json:"createdSubCategories"`
	MergedSubCategories  int `json:"mergedSubCategories"`
	SkippedDuplicates    int `json:"skippedDuplicates"`
}

// DomainGroupsReplacedEvent is published after a merge persists a new
// domain-groups document so open views can refresh.
type DomainGroupsReplacedEvent struct {
	Source string
	Stats  MergeStats
	Data   DomainGroupsData
}

// DatasetReseededEvent is published when a load silently repaired a
// stale or corrupt dataset, so higher layers can warn the user.
type DatasetReseededEvent struct {
	Dataset string
	Reason  string
}
