// Package hierarchy defines the three-level competency taxonomy:
// IndustrySegment -> DomainGroup -> Category -> SubCategory. The
// DomainGroupsData triple is persisted as one document and only ever
// replaced whole.
package hierarchy

import (
	"strings"
	"time"
	"unicode"
)

// IndustrySegment is the top-level classification owning domain groups.
// Names are unique case-insensitively across the segment collection.
type IndustrySegment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DomainGroup belongs to exactly one industry segment. The segment name
// is denormalized for display.
type DomainGroup struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	IndustrySegmentID   string    `json:"industrySegmentId"`
	IndustrySegmentName string    `json:"industrySegmentName"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	DomainGroupID string    `json:"domainGroupId"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SubCategory is the leaf level; it has no children.
type SubCategory struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"categoryId"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DomainGroupsData is the aggregate persisted as one document. Every
// Category.DomainGroupID must reference a present group and every
// SubCategory.CategoryID a present category; callers maintain that
// invariant by mutating only through the merge engine and the cascade
// helpers below.
type DomainGroupsData struct {
	DomainGroups  []DomainGroup `json:"domainGroups"`
	Categories    []Category    `json:"categories"`
	SubCategories []SubCategory `json:"subCategories"`
}

func EmptyData() DomainGroupsData {
	return DomainGroupsData{
		DomainGroups:  []DomainGroup{},
		Categories:    []Category{},
		SubCategories: []SubCategory{},
	}
}

// RemoveDomainGroup deletes a group and cascades to its categories and
// their sub-categories.
func (d *DomainGroupsData) RemoveDomainGroup(id string) {
	kept := d.DomainGroups[:0]
	for _, group := range d.DomainGroups {
		if group.ID != id {
			kept = append(kept, group)
		}
	}
	d.DomainGroups = kept

	var orphaned []string
	keptCategories := d.Categories[:0]
	for _, category := range d.Categories {
		if category.DomainGroupID == id {
			orphaned = append(orphaned, category.ID)
			continue
		}
		keptCategories = append(keptCategories, category)
	}
	d.Categories = keptCategories

	for _, categoryID := range orphaned {
		d.removeSubCategoriesOf(categoryID)
	}
}

// RemoveCategory deletes a category and cascades to its sub-categories.
func (d *DomainGroupsData) RemoveCategory(id string) {
	kept := d.Categories[:0]
	for _, category := range d.Categories {
		if category.ID != id {
			kept = append(kept, category)
		}
	}
	d.Categories = kept
	d.removeSubCategoriesOf(id)
}

func (d *DomainGroupsData) RemoveSubCategory(id string) {
	kept := d.SubCategories[:0]
	for _, sub := range d.SubCategories {
		if sub.ID != id {
			kept = append(kept, sub)
		}
	}
	d.SubCategories = kept
}

func (d *DomainGroupsData) removeSubCategoriesOf(categoryID string) {
	kept := d.SubCategories[:0]
	for _, sub := range d.SubCategories {
		if sub.CategoryID != categoryID {
			kept = append(kept, sub)
		}
	}
	d.SubCategories = kept
}

// NormalizeName lowercases and strips everything but letters and
// digits. It is the fuzzy second pass of segment matching; exact
// case-insensitive comparison always runs first.
func NormalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
