// Package seed provides default dataset content and the one-click bulk
// template: a complete worked hierarchy for a canned industry.
package seed

import (
	"fmt"
	"time"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
)

// TemplateIndustry is the industry segment the bulk template populates.
const TemplateIndustry = "Technology"

type templateCategory struct {
	name          string
	subCategories []string
}

type templateGroup struct {
	name       string
	categories []templateCategory
}

// templateGroups is the fixed worked hierarchy: 4 domain groups, 13
// categories, 52 sub-categories.
var templateGroups = []templateGroup{
	{
		name: "Digital Strategy",
		categories: []templateCategory{
			{"Technology Roadmap", []string{"Capability Assessment", "Investment Planning", "Vendor Evaluation", "Roadmap Communication"}},
			{"Innovation Management", []string{"Idea Pipeline", "Proof of Concept", "Incubation", "Adoption Tracking"}},
			{"Enterprise Architecture", []string{"Domain Modeling", "Integration Patterns", "Standards Governance", "Architecture Review"}},
			{"Portfolio Governance", []string{"Demand Intake", "Prioritization", "Benefits Realization", "Stage Gates"}},
		},
	},
	{
		name: "Software Engineering",
		categories: []templateCategory{
			{"Application Development", []string{"Requirements Analysis", "API Design", "Code Review", "Release Management"}},
			{"Quality Engineering", []string{"Test Strategy", "Test Automation", "Performance Testing", "Defect Triage"}},
			{"DevOps & Platforms", []string{"Continuous Integration", "Infrastructure as Code", "Observability", "Incident Response"}},
		},
	},
	{
		name: "Data & Analytics",
		categories: []templateCategory{
			{"Data Engineering", []string{"Pipeline Design", "Data Modeling", "Data Quality", "Metadata Management"}},
			{"Business Intelligence", []string{"Dashboard Design", "Self-Service Enablement", "KPI Definition", "Report Distribution"}},
			{"Machine Learning", []string{"Feature Engineering", "Model Training", "Model Deployment", "Model Monitoring"}},
		},
	},
	{
		name: "Cybersecurity",
		categories: []templateCategory{
			{"Security Operations", []string{"Threat Detection", "Vulnerability Management", "Incident Handling", "Forensics"}},
			{"Identity & Access", []string{"Access Provisioning", "Privileged Access", "Authentication Design", "Access Certification"}},
			{"Risk & Compliance", []string{"Risk Assessment", "Policy Management", "Audit Support", "Awareness Training"}},
		},
	},
}

// TemplateHierarchy returns the template as the nested map the merge
// engine consumes. Loading the template through the merge engine is
// what keeps repeated clicks from duplicating records.
func TemplateHierarchy() hierarchy.Map {
	m := hierarchy.NewMap()
	for _, group := range templateGroups {
		for _, category := range group.categories {
			for _, sub := range category.subCategories {
				m.Add(TemplateIndustry, group.name, category.name, sub)
			}
		}
	}
	return m
}

// TemplateData materializes the full triple directly. Ids derive from
// the supplied run timestamp plus positional suffixes. They are unique
// within one run but can collide across runs in the same millisecond,
// so consumers route the output through the merge engine instead of
// appending it.
func TemplateData(segmentID string, now time.Time) hierarchy.DomainGroupsData {
	ts := now.UnixMilli()
	data := hierarchy.EmptyData()

	for gi, group := range templateGroups {
		groupID := fmt.Sprintf("dg-%d-%d", ts, gi+1)
		data.DomainGroups = append(data.DomainGroups, hierarchy.DomainGroup{
			ID:                  groupID,
			Name:                group.name,
			Description:         "Loaded from bulk template",
			IndustrySegmentID:   segmentID,
			IndustrySegmentName: TemplateIndustry,
			IsActive:            true,
			CreatedAt:           now,
			UpdatedAt:           now,
		})
		for ci, category := range group.categories {
			categoryID := fmt.Sprintf("cat-%d-%d-%d", ts, gi+1, ci+1)
			data.Categories = append(data.Categories, hierarchy.Category{
				ID:            categoryID,
				Name:          category.name,
				Description:   "Loaded from bulk template",
				DomainGroupID: groupID,
				IsActive:      true,
				CreatedAt:     now,
				UpdatedAt:     now,
			})
			for si, sub := range category.subCategories {
				data.SubCategories = append(data.SubCategories, hierarchy.SubCategory{
					ID:         fmt.Sprintf("sub-%d-%d-%d-%d", ts, gi+1, ci+1, si+1),
					Name:       sub,
					CategoryID: categoryID,
					IsActive:   true,
					CreatedAt:  now,
					UpdatedAt:  now,
				})
			}
		}
	}
	return data
}
