package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/pkg/datastore"
	"github.com/strata-hq/masterdata/pkg/eventbus"
	"github.com/strata-hq/masterdata/pkg/serrors"
)

var (
	ErrEmptyHierarchy = serrors.NewError(
		"MERGE_EMPTY_HIERARCHY",
		"hierarchy contains no data to integrate",
		"check the uploaded file for usable rows",
	)
	ErrAmbiguousSegment = serrors.NewError(
		"MERGE_AMBIGUOUS_SEGMENT",
		"segment name matches multiple existing segments",
		"rename one of the conflicting segments before importing",
	)
)

// MergeResult is what one merge run produced and persisted.
type MergeResult struct {
	Data     hierarchy.DomainGroupsData  `json:"data"`
	Segments []hierarchy.IndustrySegment `json:"segments"`
	Stats    hierarchy.MergeStats        `json:"stats"`
}

// MergeService reconciles a parsed hierarchy with the persisted
// collections: reuse on a name match, create otherwise, never
// duplicate. All four entry points (manual form, spreadsheet upload,
// bulk template, JSON import) funnel through Convert.
type MergeService struct {
	datasets  *Datasets
	publisher eventbus.EventBus
	log       *logrus.Logger
}

func NewMergeService(datasets *Datasets, publisher eventbus.EventBus, log *logrus.Logger) *MergeService {
	return &MergeService{datasets: datasets, publisher: publisher, log: log}
}

// Convert merges the hierarchy into the current state and persists the
// result. Resolution runs top-down: a created segment is persisted
// before its groups are resolved, because group matching needs the
// segment id. Running the same hierarchy twice creates nothing the
// second time. The source string ends up in the provenance description
// of every created record.
func (s *MergeService) Convert(ctx context.Context, hmap hierarchy.Map, source string) (*MergeResult, error) {
	if hmap.IsEmpty() {
		return nil, ErrEmptyHierarchy
	}

	data, _, err := s.datasets.DomainGroups.Load(ctx)
	if err != nil {
		return nil, err
	}
	segments, err := datastore.GetTyped[hierarchy.IndustrySegment](ctx, s.datasets.Records, DatasetIndustrySegments)
	if err != nil {
		return nil, err
	}

	// Resolve every segment name before any write so an ambiguous
	// collision aborts the whole merge with the store untouched.
	for _, segmentName := range sortedKeys(hmap) {
		if _, _, err := resolveSegment(segments, segmentName); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	description := "Imported from " + source
	result := &MergeResult{}

	type runKey struct{ name, parent string }
	createdGroups := make(map[runKey]bool)

	for _, segmentName := range sortedKeys(hmap) {
		segment, found, err := resolveSegment(segments, segmentName)
		if err != nil {
			return nil, err
		}
		if !found {
			segment = hierarchy.IndustrySegment{
				ID:          "seg-" + uuid.NewString(),
				Name:        segmentName,
				Description: description,
				IsActive:    true,
				CreatedAt:   now,
			}
			// Persist before group resolution proceeds; groups are
			// matched by segment id.
			if err := datastore.AddTyped(ctx, s.datasets.Records, DatasetIndustrySegments, segment); err != nil {
				return nil, fmt.Errorf("failed to persist industry segment %q: %w", segmentName, err)
			}
			segments = append(segments, segment)
			result.Stats.CreatedSegments++
		}

		for _, groupName := range sortedKeys(hmap[segmentName]) {
			group, exists := findGroup(data.DomainGroups, groupName, segment.ID)
			switch {
			case exists && createdGroups[runKey{strings.ToLower(groupName), segment.ID}]:
				// Same group appeared twice in this import.
				result.Stats.SkippedDuplicates++
			case exists:
				result.Stats.MergedGroups++
			default:
				group = hierarchy.DomainGroup{
					ID:                  "dg-" + uuid.NewString(),
					Name:                groupName,
					Description:         description,
					IndustrySegmentID:   segment.ID,
					IndustrySegmentName: segment.Name,
					IsActive:            true,
					CreatedAt:           now,
					UpdatedAt:           now,
				}
				data.DomainGroups = append(data.DomainGroups, group)
				createdGroups[runKey{strings.ToLower(groupName), segment.ID}] = true
				result.Stats.CreatedGroups++
			}

			for _, categoryName := range sortedKeys(hmap[segmentName][groupName]) {
				category, exists := findCategory(data.Categories, categoryName, group.ID)
				if exists {
					result.Stats.MergedCategories++
				} else {
					category = hierarchy.Category{
						ID:            "cat-" + uuid.NewString(),
						Name:          categoryName,
						Description:   description,
						DomainGroupID: group.ID,
						IsActive:      true,
						CreatedAt:     now,
						UpdatedAt:     now,
					}
					data.Categories = append(data.Categories, category)
					result.Stats.CreatedCategories++
				}

				for _, subName := range hmap[segmentName][groupName][categoryName] {
					if _, exists := findSubCategory(data.SubCategories, subName, category.ID); exists {
						result.Stats.MergedSubCategories++
						continue
					}
					data.SubCategories = append(data.SubCategories, hierarchy.SubCategory{
						ID:          "sub-" + uuid.NewString(),
						Name:        subName,
						Description: description,
						CategoryID:  category.ID,
						IsActive:    true,
						CreatedAt:   now,
						UpdatedAt:   now,
					})
					result.Stats.CreatedSubCategories++
				}
			}
		}
	}

	if err := s.datasets.DomainGroups.Save(ctx, data); err != nil {
		return nil, err
	}
	result.Data = data
	result.Segments = segments

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"source":            source,
			"createdSegments":   result.Stats.CreatedSegments,
			"createdGroups":     result.Stats.CreatedGroups,
			"mergedGroups":      result.Stats.MergedGroups,
			"createdCategories": result.Stats.CreatedCategories,
			"createdSubs":       result.Stats.CreatedSubCategories,
		}).Info("merge: hierarchy integrated")
	}
	if s.publisher != nil {
		s.publisher.Publish(&hierarchy.DomainGroupsReplacedEvent{
			Source: source,
			Stats:  result.Stats,
			Data:   data,
		})
	}
	return result, nil
}

// resolveSegment matches a name against existing segments: an exact
// case-insensitive pass first, then a normalized pass that ignores
// punctuation. Exact wins so two stored segments that happen to
// normalize identically stay distinct. When only the normalized pass
// matches and it matches more than one segment, the merge is refused
// rather than guessing.
func resolveSegment(segments []hierarchy.IndustrySegment, name string) (hierarchy.IndustrySegment, bool, error) {
	for _, segment := range segments {
		if strings.EqualFold(segment.Name, name) {
			return segment, true, nil
		}
	}

	normalized := hierarchy.NormalizeName(name)
	var matches []hierarchy.IndustrySegment
	for _, segment := range segments {
		if hierarchy.NormalizeName(segment.Name) == normalized {
			matches = append(matches, segment)
		}
	}
	switch len(matches) {
	case 0:
		return hierarchy.IndustrySegment{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return hierarchy.IndustrySegment{}, false, fmt.Errorf(
			"%w: %q could be %s", ErrAmbiguousSegment, name, strings.Join(names, " or "))
	}
}

func findGroup(groups []hierarchy.DomainGroup, name, segmentID string) (hierarchy.DomainGroup, bool) {
	for _, group := range groups {
		if group.IndustrySegmentID == segmentID && strings.EqualFold(group.Name, name) {
			return group, true
		}
	}
	return hierarchy.DomainGroup{}, false
}

func findCategory(categories []hierarchy.Category, name, groupID string) (hierarchy.Category, bool) {
	for _, category := range categories {
		if category.DomainGroupID == groupID && strings.EqualFold(category.Name, name) {
			return category, true
		}
	}
	return hierarchy.Category{}, false
}

func findSubCategory(subs []hierarchy.SubCategory, name, categoryID string) (hierarchy.SubCategory, bool) {
	for _, sub := range subs {
		if sub.CategoryID == categoryID && strings.EqualFold(sub.Name, name) {
			return sub, true
		}
	}
	return hierarchy.SubCategory{}, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
