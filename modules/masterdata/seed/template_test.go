package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/capability"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/reference"
)

func TestTemplateData_Shape(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	data := TemplateData("seg-1", now)

	assert.Len(t, data.DomainGroups, 4)
	assert.Len(t, data.Categories, 13)
	assert.Len(t, data.SubCategories, 52)
	require.NoError(t, data.Validate())
}

func TestTemplateData_ReferentialIntegrity(t *testing.T) {
	data := TemplateData("seg-1", time.Now())

	groups := make(map[string]bool)
	for _, group := range data.DomainGroups {
		groups[group.ID] = true
		assert.Equal(t, "seg-1", group.IndustrySegmentID)
	}
	categories := make(map[string]bool)
	for _, category := range data.Categories {
		assert.True(t, groups[category.DomainGroupID], "category %s references missing group", category.Name)
		categories[category.ID] = true
	}
	for _, sub := range data.SubCategories {
		assert.True(t, categories[sub.CategoryID], "sub-category %s references missing category", sub.Name)
	}
}

func TestTemplateData_IDsUniqueWithinRun(t *testing.T) {
	data := TemplateData("seg-1", time.Now())
	seen := make(map[string]bool)
	for _, group := range data.DomainGroups {
		assert.False(t, seen[group.ID])
		seen[group.ID] = true
	}
	for _, category := range data.Categories {
		assert.False(t, seen[category.ID])
		seen[category.ID] = true
	}
	for _, sub := range data.SubCategories {
		assert.False(t, seen[sub.ID])
		seen[sub.ID] = true
	}
}

func TestTemplateHierarchy_MatchesTriple(t *testing.T) {
	m := TemplateHierarchy()
	require.Contains(t, m, TemplateIndustry)
	assert.Len(t, m[TemplateIndustry], 4)

	categories := 0
	subCategories := 0
	for _, group := range m[TemplateIndustry] {
		categories += len(group)
		for _, subs := range group {
			subCategories += len(subs)
		}
	}
	assert.Equal(t, 13, categories)
	assert.Equal(t, 52, subCategories)
}

func TestDefaultSeedsAreValid(t *testing.T) {
	require.NoError(t, DomainGroups().Validate())
	require.NoError(t, reference.ValidateCountries(Countries()))
	require.NoError(t, reference.ValidateOrganizationTypes(OrganizationTypes()))
	require.NoError(t, capability.ValidateLevels(CapabilityLevels()))
}
