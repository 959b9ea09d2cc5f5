package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-hq/masterdata/modules/masterdata/seed"
	"github.com/strata-hq/masterdata/modules/masterdata/services"
)

func TestTemplateService_LoadTwiceCreatesOnce(t *testing.T) {
	ctx := context.Background()
	_, merge, _ := newTestEnv(t)
	svc := services.NewTemplateService(merge)

	first, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Stats.CreatedSegments)
	assert.Equal(t, 4, first.Stats.CreatedGroups)
	assert.Equal(t, 13, first.Stats.CreatedCategories)
	assert.Equal(t, 52, first.Stats.CreatedSubCategories)
	require.Len(t, first.Segments, 1)
	assert.Equal(t, seed.TemplateIndustry, first.Segments[0].Name)

	second, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.Stats.CreatedSegments)
	assert.Zero(t, second.Stats.CreatedGroups)
	assert.Zero(t, second.Stats.CreatedCategories)
	assert.Zero(t, second.Stats.CreatedSubCategories)
	assert.Equal(t, 4, second.Stats.MergedGroups)
	assert.Len(t, second.Data.SubCategories, 52)
}

func TestTemplateService_LoadMergesIntoExistingSegment(t *testing.T) {
	ctx := context.Background()
	datasets, merge, _ := newTestEnv(t)
	svc := services.NewTemplateService(merge)

	hierarchySvc := services.NewHierarchyService(datasets, merge, nil)
	_, err := hierarchySvc.CreateSegment(ctx, "technology", "pre-existing")
	require.NoError(t, err)

	result, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Stats.CreatedSegments)
	require.Len(t, result.Segments, 1)
	assert.Equal(t, "technology", result.Segments[0].Name)
}
