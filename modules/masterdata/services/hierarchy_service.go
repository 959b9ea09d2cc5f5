package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/pkg/datastore"
	"github.com/strata-hq/masterdata/pkg/eventbus"
	"github.com/strata-hq/masterdata/pkg/serrors"
)

var (
	ErrSegmentExists = serrors.NewError(
		"HIERARCHY_SEGMENT_EXISTS",
		"an industry segment with this name already exists",
		"",
	)
	ErrSegmentInUse = serrors.NewError(
		"HIERARCHY_SEGMENT_IN_USE",
		"industry segment still owns domain groups",
		"delete or reassign its domain groups first",
	)
	ErrNotFound = serrors.NewError("HIERARCHY_NOT_FOUND", "record not found", "")
)

// HierarchyService is the manual-form entry point. Creations funnel
// through the merge engine so form input, uploads and templates all
// obey the same de-duplication contract; deletions cascade to keep the
// persisted triple referentially intact.
type HierarchyService struct {
	datasets  *Datasets
	merge     *MergeService
	publisher eventbus.EventBus
}

func NewHierarchyService(datasets *Datasets, merge *MergeService, publisher eventbus.EventBus) *HierarchyService {
	return &HierarchyService{datasets: datasets, merge: merge, publisher: publisher}
}

// Data returns the current hierarchy document. A silent repair during
// load is surfaced on the event bus so views can warn the user.
func (s *HierarchyService) Data(ctx context.Context) (hierarchy.DomainGroupsData, error) {
	data, info, err := s.datasets.DomainGroups.Load(ctx)
	if err != nil {
		return hierarchy.DomainGroupsData{}, err
	}
	if info.Reseeded && s.publisher != nil {
		s.publisher.Publish(&hierarchy.DatasetReseededEvent{
			Dataset: DatasetDomainGroups,
			Reason:  string(info.Reason),
		})
	}
	return data, nil
}

func (s *HierarchyService) Segments(ctx context.Context) ([]hierarchy.IndustrySegment, error) {
	return datastore.GetTyped[hierarchy.IndustrySegment](ctx, s.datasets.Records, DatasetIndustrySegments)
}

// CreateSegment adds a segment after checking both the exact and the
// punctuation-insensitive name match against existing segments.
func (s *HierarchyService) CreateSegment(ctx context.Context, name, description string) (hierarchy.IndustrySegment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return hierarchy.IndustrySegment{}, fmt.Errorf("industry segment name is required")
	}
	segments, err := s.Segments(ctx)
	if err != nil {
		return hierarchy.IndustrySegment{}, err
	}
	if _, found, err := resolveSegment(segments, name); err != nil {
		return hierarchy.IndustrySegment{}, err
	} else if found {
		return hierarchy.IndustrySegment{}, fmt.Errorf("%w: %q", ErrSegmentExists, name)
	}

	segment := hierarchy.IndustrySegment{
		ID:          "seg-" + uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}
	if err := datastore.AddTyped(ctx, s.datasets.Records, DatasetIndustrySegments, segment); err != nil {
		return hierarchy.IndustrySegment{}, err
	}
	return segment, nil
}

// DeleteSegment refuses to orphan domain groups.
func (s *HierarchyService) DeleteSegment(ctx context.Context, id string) error {
	data, err := s.Data(ctx)
	if err != nil {
		return err
	}
	for _, group := range data.DomainGroups {
		if group.IndustrySegmentID == id {
			return fmt.Errorf("%w: %s", ErrSegmentInUse, group.Name)
		}
	}
	return s.datasets.Records.DeleteItem(ctx, DatasetIndustrySegments, id)
}

// CreateDomainGroup routes through the merge engine: creating a group
// that already exists under the segment reuses it instead of
// duplicating.
func (s *HierarchyService) CreateDomainGroup(ctx context.Context, segmentName, groupName string) (*MergeResult, error) {
	m := hierarchy.NewMap()
	m.Add(strings.TrimSpace(segmentName), strings.TrimSpace(groupName), "", "")
	return s.merge.Convert(ctx, m, "manual entry")
}

func (s *HierarchyService) CreateCategory(ctx context.Context, segmentName, groupName, categoryName string) (*MergeResult, error) {
	m := hierarchy.NewMap()
	m.Add(strings.TrimSpace(segmentName), strings.TrimSpace(groupName), strings.TrimSpace(categoryName), "")
	return s.merge.Convert(ctx, m, "manual entry")
}

func (s *HierarchyService) CreateSubCategory(ctx context.Context, segmentName, groupName, categoryName, subCategoryName string) (*MergeResult, error) {
	m := hierarchy.NewMap()
	m.Add(
		strings.TrimSpace(segmentName),
		strings.TrimSpace(groupName),
		strings.TrimSpace(categoryName),
		strings.TrimSpace(subCategoryName),
	)
	return s.merge.Convert(ctx, m, "manual entry")
}

// DeleteDomainGroup removes the group and cascades to its categories
// and their sub-categories, then replaces the document whole.
func (s *HierarchyService) DeleteDomainGroup(ctx context.Context, id string) error {
	return s.mutate(ctx, func(data *hierarchy.DomainGroupsData) error {
		if !hasGroup(data.DomainGroups, id) {
			return fmt.Errorf("%w: domain group %s", ErrNotFound, id)
		}
		data.RemoveDomainGroup(id)
		return nil
	})
}

func (s *HierarchyService) DeleteCategory(ctx context.Context, id string) error {
	return s.mutate(ctx, func(data *hierarchy.DomainGroupsData) error {
		for _, category := range data.Categories {
			if category.ID == id {
				data.RemoveCategory(id)
				return nil
			}
		}
		return fmt.Errorf("%w: category %s", ErrNotFound, id)
	})
}

func (s *HierarchyService) DeleteSubCategory(ctx context.Context, id string) error {
	return s.mutate(ctx, func(data *hierarchy.DomainGroupsData) error {
		for _, sub := range data.SubCategories {
			if sub.ID == id {
				data.RemoveSubCategory(id)
				return nil
			}
		}
		return fmt.Errorf("%w: sub-category %s", ErrNotFound, id)
	})
}

func (s *HierarchyService) mutate(ctx context.Context, fn func(*hierarchy.DomainGroupsData) error) error {
	data, err := s.Data(ctx)
	if err != nil {
		return err
	}
	if err := fn(&data); err != nil {
		return err
	}
	if err := s.datasets.DomainGroups.Save(ctx, data); err != nil {
		return err
	}
	if s.publisher != nil {
		s.publisher.Publish(&hierarchy.DomainGroupsReplacedEvent{
			Source: "manual entry",
			Data:   data,
		})
	}
	return nil
}

func hasGroup(groups []hierarchy.DomainGroup, id string) bool {
	for _, group := range groups {
		if group.ID == id {
			return true
		}
	}
	return false
}
