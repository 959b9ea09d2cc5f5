package services

import (
	"context"
	"time"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/modules/masterdata/seed"
)

// TemplateService loads the canned technology hierarchy. The template
// goes through the merge engine, so clicking the button twice merges
// into the existing records instead of duplicating them.
type TemplateService struct {
	merge *MergeService
}

func NewTemplateService(merge *MergeService) *TemplateService {
	return &TemplateService{merge: merge}
}

func (s *TemplateService) Load(ctx context.Context) (*MergeResult, error) {
	return s.merge.Convert(ctx, seed.TemplateHierarchy(), "bulk template")
}

// Preview materializes the template without touching the store, for
// showing the user what Load would add.
func (s *TemplateService) Preview() hierarchy.DomainGroupsData {
	return seed.TemplateData("seg-preview", time.Now())
}
