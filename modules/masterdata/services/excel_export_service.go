package services

import (
	"context"
	"sort"
	"strings"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/pkg/excel"
)

// ExcelExportService flattens the hierarchy back into the same
// four-column sheet the ingest side reads, so an exported workbook can
// be re-imported as-is.
type ExcelExportService struct {
	hierarchy *HierarchyService
}

func NewExcelExportService(hierarchySvc *HierarchyService) *ExcelExportService {
	return &ExcelExportService{hierarchy: hierarchySvc}
}

// Export renders the current hierarchy as an xlsx workbook. A group
// without categories still gets a row, as does a category without
// sub-categories; re-importing such rows recreates the same shape.
func (s *ExcelExportService) Export(ctx context.Context) ([]byte, error) {
	data, err := s.hierarchy.Data(ctx)
	if err != nil {
		return nil, err
	}
	return excel.WriteRows("Domain Groups", hierarchyColumns, FlattenRows(data))
}

// FlattenRows walks the hierarchy top-down and emits one row per leaf.
func FlattenRows(data hierarchy.DomainGroupsData) [][]string {
	categoriesByGroup := make(map[string][]hierarchy.Category)
	for _, category := range data.Categories {
		categoriesByGroup[category.DomainGroupID] = append(categoriesByGroup[category.DomainGroupID], category)
	}
	subsByCategory := make(map[string][]hierarchy.SubCategory)
	for _, sub := range data.SubCategories {
		subsByCategory[sub.CategoryID] = append(subsByCategory[sub.CategoryID], sub)
	}

	groups := make([]hierarchy.DomainGroup, len(data.DomainGroups))
	copy(groups, data.DomainGroups)
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].IndustrySegmentName != groups[j].IndustrySegmentName {
			return strings.ToLower(groups[i].IndustrySegmentName) < strings.ToLower(groups[j].IndustrySegmentName)
		}
		return strings.ToLower(groups[i].Name) < strings.ToLower(groups[j].Name)
	})

	var rows [][]string
	for _, group := range groups {
		categories := categoriesByGroup[group.ID]
		if len(categories) == 0 {
			rows = append(rows, []string{group.IndustrySegmentName, group.Name, "", ""})
			continue
		}
		sort.Slice(categories, func(i, j int) bool {
			return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
		})
		for _, category := range categories {
			subs := subsByCategory[category.ID]
			if len(subs) == 0 {
				rows = append(rows, []string{group.IndustrySegmentName, group.Name, category.Name, ""})
				continue
			}
			sort.Slice(subs, func(i, j int) bool {
				return strings.ToLower(subs[i].Name) < strings.ToLower(subs[j].Name)
			})
			for _, sub := range subs {
				rows = append(rows, []string{group.IndustrySegmentName, group.Name, category.Name, sub.Name})
			}
		}
	}
	return rows
}
