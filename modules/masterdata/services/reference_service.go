package services

import (
	"context"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/capability"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/reference"
)

// ReferenceService serves the flat reference datasets. Updates replace
// the whole list; the manager validates before writing.
type ReferenceService struct {
	datasets *Datasets
}

func NewReferenceService(datasets *Datasets) *ReferenceService {
	return &ReferenceService{datasets: datasets}
}

func (s *ReferenceService) Countries(ctx context.Context) ([]reference.Country, error) {
	countries, _, err := s.datasets.Countries.Load(ctx)
	return countries, err
}

func (s *ReferenceService) ReplaceCountries(ctx context.Context, countries []reference.Country) error {
	return s.datasets.Countries.Save(ctx, countries)
}

func (s *ReferenceService) OrganizationTypes(ctx context.Context) ([]reference.OrganizationType, error) {
	types, _, err := s.datasets.OrganizationTypes.Load(ctx)
	return types, err
}

func (s *ReferenceService) ReplaceOrganizationTypes(ctx context.Context, types []reference.OrganizationType) error {
	return s.datasets.OrganizationTypes.Save(ctx, types)
}

func (s *ReferenceService) CapabilityLevels(ctx context.Context) ([]capability.Level, error) {
	levels, _, err := s.datasets.CapabilityLevels.Load(ctx)
	return levels, err
}

func (s *ReferenceService) ReplaceCapabilityLevels(ctx context.Context, levels []capability.Level) error {
	return s.datasets.CapabilityLevels.Save(ctx, levels)
}
