package seed

import (
	"github.com/strata-hq/masterdata/modules/masterdata/domain/capability"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/reference"
)

// DomainGroups is the seed for the hierarchy document. The console
// starts empty; content arrives through forms, uploads or the bulk
// template.
func DomainGroups() hierarchy.DomainGroupsData {
	return hierarchy.EmptyData()
}

// IndustrySegments is the seed for the segment collection.
func IndustrySegments() []hierarchy.IndustrySegment {
	return []hierarchy.IndustrySegment{}
}

func Countries() []reference.Country {
	return []reference.Country{
		{Code: "US", Name: "United States", Region: "Americas", IsActive: true},
		{Code: "GB", Name: "United Kingdom", Region: "EMEA", IsActive: true},
		{Code: "DE", Name: "Germany", Region: "EMEA", IsActive: true},
		{Code: "IN", Name: "India", Region: "APAC", IsActive: true},
		{Code: "SG", Name: "Singapore", Region: "APAC", IsActive: true},
		{Code: "AU", Name: "Australia", Region: "APAC", IsActive: true},
		{Code: "BR", Name: "Brazil", Region: "Americas", IsActive: true},
		{Code: "JP", Name: "Japan", Region: "APAC", IsActive: true},
	}
}

func OrganizationTypes() []reference.OrganizationType {
	return []reference.OrganizationType{
		{ID: "ot-1", Name: "Enterprise", Description: "Large established organization", IsActive: true},
		{ID: "ot-2", Name: "Mid-Market", Description: "Growth-stage organization", IsActive: true},
		{ID: "ot-3", Name: "Startup", Description: "Early-stage organization", IsActive: true},
		{ID: "ot-4", Name: "Public Sector", Description: "Government or public body", IsActive: true},
		{ID: "ot-5", Name: "Non-Profit", IsActive: true},
	}
}

func CapabilityLevels() []capability.Level {
	return []capability.Level{
		{ID: "lvl-1", Label: "Novice", MinScore: 0, MaxScore: 1.5, Color: "#ef4444", Order: 1, IsActive: true},
		{ID: "lvl-2", Label: "Advanced Beginner", MinScore: 1.5, MaxScore: 2.5, Color: "#f97316", Order: 2, IsActive: true},
		{ID: "lvl-3", Label: "Practitioner", MinScore: 2.5, MaxScore: 3.5, Color: "#f59e0b", Order: 3, IsActive: true},
		{ID: "lvl-4", Label: "Proficient", MinScore: 3.5, MaxScore: 4.5, Color: "#84cc16", Order: 4, IsActive: true},
		{ID: "lvl-5", Label: "Expert", MinScore: 4.5, MaxScore: 5, Color: "#22c55e", Order: 5, IsActive: true},
	}
}
