package hierarchy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() DomainGroupsData {
	now := time.Now()
	return DomainGroupsData{
		DomainGroups: []DomainGroup{
			{ID: "dg-1", Name: "Strategy", IndustrySegmentID: "seg-1", IndustrySegmentName: "Life Sciences", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: "dg-2", Name: "Operations", IndustrySegmentID: "seg-1", IndustrySegmentName: "Life Sciences", IsActive: true, CreatedAt: now, UpdatedAt: now},
		},
		Categories: []Category{
			{ID: "cat-1", Name: "Planning", DomainGroupID: "dg-1", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: "cat-2", Name: "Execution", DomainGroupID: "dg-1", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: "cat-3", Name: "Delivery", DomainGroupID: "dg-2", IsActive: true, CreatedAt: now, UpdatedAt: now},
		},
		SubCategories: []SubCategory{
			{ID: "sub-1", Name: "Forecasting", CategoryID: "cat-1", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: "sub-2", Name: "Budgeting", CategoryID: "cat-1", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: "sub-3", Name: "Tracking", CategoryID: "cat-2", IsActive: true, CreatedAt: now, UpdatedAt: now},
			{ID: "sub-4", Name: "Handover", CategoryID: "cat-3", IsActive: true, CreatedAt: now, UpdatedAt: now},
		},
	}
}

func TestRemoveDomainGroup_Cascades(t *testing.T) {
	data := sampleData()
	data.RemoveDomainGroup("dg-1")

	require.Len(t, data.DomainGroups, 1)
	assert.Equal(t, "dg-2", data.DomainGroups[0].ID)

	// cat-1 and cat-2 belonged to dg-1 and must be gone with their subs.
	require.Len(t, data.Categories, 1)
	assert.Equal(t, "cat-3", data.Categories[0].ID)
	require.Len(t, data.SubCategories, 1)
	assert.Equal(t, "sub-4", data.SubCategories[0].ID)
}

func TestRemoveCategory_Cascades(t *testing.T) {
	data := sampleData()
	data.RemoveCategory("cat-1")

	require.Len(t, data.Categories, 2)
	for _, sub := range data.SubCategories {
		assert.NotEqual(t, "cat-1", sub.CategoryID)
	}
	assert.Len(t, data.SubCategories, 2)
}

func TestRemoveSubCategory(t *testing.T) {
	data := sampleData()
	data.RemoveSubCategory("sub-2")
	assert.Len(t, data.SubCategories, 3)
}

func TestValidate(t *testing.T) {
	require.NoError(t, sampleData().Validate())

	missing := sampleData()
	missing.Categories = nil
	assert.Error(t, missing.Validate())

	noName := sampleData()
	noName.DomainGroups[0].Name = "  "
	assert.Error(t, noName.Validate())

	orphanField := sampleData()
	orphanField.SubCategories[0].CategoryID = ""
	assert.Error(t, orphanField.Validate())

	assert.NoError(t, EmptyData().Validate())
}

func TestValidateReferences(t *testing.T) {
	require.NoError(t, sampleData().ValidateReferences())

	danglingCategory := sampleData()
	danglingCategory.Categories[0].DomainGroupID = "dg-missing"
	assert.Error(t, danglingCategory.ValidateReferences())

	danglingSub := sampleData()
	danglingSub.SubCategories[0].CategoryID = "cat-missing"
	assert.Error(t, danglingSub.ValidateReferences())
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "lifesciences", NormalizeName("Life Sciences"))
	assert.Equal(t, "lifesciences", NormalizeName("life-sciences"))
	assert.Equal(t, "lifesciences", NormalizeName("LIFE_SCIENCES!"))
	assert.Equal(t, "oilgas2", NormalizeName("Oil & Gas 2"))
}

func TestMap_AddCreatesLevelsOnFirstSight(t *testing.T) {
	m := NewMap()
	m.Add("Life Sciences", "Strategy", "Planning", "Forecasting")
	m.Add("Life Sciences", "Strategy", "Planning", "Budgeting")

	require.Contains(t, m, "Life Sciences")
	require.Contains(t, m["Life Sciences"], "Strategy")
	assert.Equal(t, []string{"Forecasting", "Budgeting"}, m["Life Sciences"]["Strategy"]["Planning"])
}

func TestMap_AddDeduplicatesSubCategoriesCaseSensitively(t *testing.T) {
	m := NewMap()
	m.Add("Life Sciences", "Strategy", "Planning", "Forecasting")
	m.Add("Life Sciences", "Strategy", "Planning", "Forecasting")
	m.Add("Life Sciences", "Strategy", "Planning", "forecasting")

	// Exact duplicates collapse here; case variants survive until the
	// merge engine's case-insensitive pass.
	assert.Equal(t, []string{"Forecasting", "forecasting"}, m["Life Sciences"]["Strategy"]["Planning"])
}

func TestMap_AddToleratesPartialRows(t *testing.T) {
	m := NewMap()
	m.Add("Life Sciences", "Strategy", "", "")
	require.Contains(t, m, "Life Sciences")
	assert.Empty(t, m["Life Sciences"]["Strategy"])

	m.Add("", "Strategy", "Planning", "Forecasting")
	assert.Len(t, m, 1)
}

func TestParsedRow_HasMinimumData(t *testing.T) {
	assert.True(t, ParsedRow{IndustrySegment: "A", DomainGroup: "B"}.HasMinimumData())
	assert.False(t, ParsedRow{IndustrySegment: "A"}.HasMinimumData())
	assert.False(t, ParsedRow{DomainGroup: "B"}.HasMinimumData())
}
