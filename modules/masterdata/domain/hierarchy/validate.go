package hierarchy

import (
	"fmt"
	"strings"
)

// Validate checks the aggregate structurally: collections present,
// required fields non-empty. Dangling references are not re-checked on
// every write; the merge engine and cascade helpers own that invariant.
func (d DomainGroupsData) Validate() error {
	if d.DomainGroups == nil || d.Categories == nil || d.SubCategories == nil {
		return fmt.Errorf("domain groups document must contain all three collections")
	}
	for i, group := range d.DomainGroups {
		if strings.TrimSpace(group.ID) == "" {
			return fmt.Errorf("domain group %d has no id", i)
		}
		if strings.TrimSpace(group.Name) == "" {
			return fmt.Errorf("domain group %s has no name", group.ID)
		}
		if strings.TrimSpace(group.IndustrySegmentID) == "" {
			return fmt.Errorf("domain group %s has no industry segment", group.ID)
		}
	}
	for i, category := range d.Categories {
		if strings.TrimSpace(category.ID) == "" {
			return fmt.Errorf("category %d has no id", i)
		}
		if strings.TrimSpace(category.Name) == "" {
			return fmt.Errorf("category %s has no name", category.ID)
		}
		if strings.TrimSpace(category.DomainGroupID) == "" {
			return fmt.Errorf("category %s has no domain group", category.ID)
		}
	}
	for i, sub := range d.SubCategories {
		if strings.TrimSpace(sub.ID) == "" {
			return fmt.Errorf("sub-category %d has no id", i)
		}
		if strings.TrimSpace(sub.Name) == "" {
			return fmt.Errorf("sub-category %s has no name", sub.ID)
		}
		if strings.TrimSpace(sub.CategoryID) == "" {
			return fmt.Errorf("sub-category %s has no category", sub.ID)
		}
	}
	return nil
}

// ValidateReferences checks that every category points at a present
// domain group and every sub-category at a present category. Used when
// a whole document arrives from outside (backup import); internal
// writes keep the invariant through the merge engine and cascade
// helpers instead.
func (d DomainGroupsData) ValidateReferences() error {
	groups := make(map[string]bool, len(d.DomainGroups))
	for _, group := range d.DomainGroups {
		groups[group.ID] = true
	}
	categories := make(map[string]bool, len(d.Categories))
	for _, category := range d.Categories {
		if !groups[category.DomainGroupID] {
			return fmt.Errorf("category %s references missing domain group %s", category.ID, category.DomainGroupID)
		}
		categories[category.ID] = true
	}
	for _, sub := range d.SubCategories {
		if !categories[sub.CategoryID] {
			return fmt.Errorf("sub-category %s references missing category %s", sub.ID, sub.CategoryID)
		}
	}
	return nil
}

// ValidateSegment checks one industry segment structurally.
func ValidateSegment(s IndustrySegment) error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("industry segment has no id")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("industry segment %s has no name", s.ID)
	}
	return nil
}
