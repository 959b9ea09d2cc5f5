package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/capability"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/reference"
	"github.com/strata-hq/masterdata/modules/masterdata/seed"
	"github.com/strata-hq/masterdata/pkg/datastore"
	"github.com/strata-hq/masterdata/pkg/kv"
)

// Dataset keys. Each is one document in the backing store.
const (
	DatasetDomainGroups      = "domain_groups"
	DatasetIndustrySegments  = "industry_segments"
	DatasetCountries         = "countries"
	DatasetOrganizationTypes = "organization_types"
	DatasetCapabilityLevels  = "capability_levels"
)

// SchemaVersion stamps every versioned document. Bump it when a
// dataset's shape changes; stale documents reseed on next load.
const SchemaVersion = 2

// Datasets bundles every managed dataset: the versioned document
// managers, the record-store view used for the segment collection, and
// the registry that recovery flows operate on.
type Datasets struct {
	DomainGroups      *datastore.Manager[hierarchy.DomainGroupsData]
	Countries         *datastore.Manager[[]reference.Country]
	OrganizationTypes *datastore.Manager[[]reference.OrganizationType]
	CapabilityLevels  *datastore.Manager[[]capability.Level]
	Records           datastore.RecordStore
	Registry          *datastore.Registry
}

func NewDatasets(store kv.Store, log *logrus.Logger) (*Datasets, error) {
	domainGroups, err := datastore.NewManager(store, datastore.Config[hierarchy.DomainGroupsData]{
		Key:      DatasetDomainGroups,
		Version:  SchemaVersion,
		Seed:     seed.DomainGroups,
		Validate: hierarchy.DomainGroupsData.Validate,
		Log:      log,
	})
	if err != nil {
		return nil, err
	}
	countries, err := datastore.NewManager(store, datastore.Config[[]reference.Country]{
		Key:      DatasetCountries,
		Version:  SchemaVersion,
		Seed:     seed.Countries,
		Validate: reference.ValidateCountries,
		Log:      log,
	})
	if err != nil {
		return nil, err
	}
	organizationTypes, err := datastore.NewManager(store, datastore.Config[[]reference.OrganizationType]{
		Key:      DatasetOrganizationTypes,
		Version:  SchemaVersion,
		Seed:     seed.OrganizationTypes,
		Validate: reference.ValidateOrganizationTypes,
		Log:      log,
	})
	if err != nil {
		return nil, err
	}
	capabilityLevels, err := datastore.NewManager(store, datastore.Config[[]capability.Level]{
		Key:      DatasetCapabilityLevels,
		Version:  SchemaVersion,
		Seed:     seed.CapabilityLevels,
		Validate: capability.ValidateLevels,
		Log:      log,
	})
	if err != nil {
		return nil, err
	}

	records := datastore.NewRecordStore(store)

	registry := datastore.NewRegistry(log)
	registry.Register(domainGroups)
	registry.Register(countries)
	registry.Register(organizationTypes)
	registry.Register(capabilityLevels)
	registry.Register(&segmentsDataset{records: records})

	return &Datasets{
		DomainGroups:      domainGroups,
		Countries:         countries,
		OrganizationTypes: organizationTypes,
		CapabilityLevels:  capabilityLevels,
		Records:           records,
		Registry:          registry,
	}, nil
}

// segmentsDataset adapts the record-backed industry segment collection
// to the registry's Dataset contract. Segments live in the table-backed
// store rather than a versioned document because the merge engine must
// persist them row by row.
type segmentsDataset struct {
	records datastore.RecordStore
}

func (d *segmentsDataset) Key() string {
	return DatasetIndustrySegments
}

func (d *segmentsDataset) Reseed(ctx context.Context) error {
	return datastore.SaveTyped(ctx, d.records, DatasetIndustrySegments, seed.IndustrySegments())
}

func (d *segmentsDataset) Health(ctx context.Context) datastore.DatasetHealth {
	health := datastore.DatasetHealth{}
	segments, err := datastore.GetTyped[hierarchy.IndustrySegment](ctx, d.records, DatasetIndustrySegments)
	if err != nil {
		health.Present = true
		health.Error = err.Error()
		return health
	}
	health.Present = true
	health.Loadable = true
	for _, segment := range segments {
		if err := hierarchy.ValidateSegment(segment); err != nil {
			health.Error = fmt.Sprintf("segment %s: %v", segment.ID, err)
			return health
		}
	}
	health.Valid = true
	return health
}
