package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/modules/masterdata/domain/capability"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/hierarchy"
	"github.com/strata-hq/masterdata/modules/masterdata/domain/reference"
	"github.com/strata-hq/masterdata/pkg/datastore"
	"github.com/strata-hq/masterdata/pkg/kv"
	"github.com/strata-hq/masterdata/pkg/serrors"
)

// ExportVersion is the format version stamped on every export document.
// Import accepts only documents carrying a version it knows.
const ExportVersion = "1.0"

var (
	ErrMalformedBackup = serrors.NewError(
		"RECOVERY_MALFORMED_BACKUP",
		"backup document could not be parsed",
		"export a fresh backup and retry",
	)
	ErrUnsupportedBackup = serrors.NewError(
		"RECOVERY_UNSUPPORTED_BACKUP",
		"backup document version is not supported",
		"",
	)
	ErrInvalidBackup = serrors.NewError(
		"RECOVERY_INVALID_BACKUP",
		"backup document failed validation",
		"no dataset was modified",
	)
)

// ExportDocument is the complete backup: every managed dataset plus
// provenance. The JSON shape is the interchange contract between
// export and import.
type ExportDocument struct {
	DomainGroups      hierarchy.DomainGroupsData   `json:"domainGroups"`
	IndustrySegments  []hierarchy.IndustrySegment  `json:"industrySegments"`
	Countries         []reference.Country          `json:"countries"`
	OrganizationTypes []reference.OrganizationType `json:"organizationTypes"`
	CapabilityLevels  []capability.Level           `json:"capabilityLevels"`
	ExportTimestamp   time.Time                    `json:"exportTimestamp"`
	Version           string                       `json:"version"`
}

// RecoveryService is the export/import/reset center. Import is
// all-or-nothing: the whole document is validated before the first
// write.
type RecoveryService struct {
	datasets *Datasets
	store    kv.Store
	log      *logrus.Logger
}

func NewRecoveryService(datasets *Datasets, store kv.Store, log *logrus.Logger) *RecoveryService {
	return &RecoveryService{datasets: datasets, store: store, log: log}
}

// Export snapshots every dataset into one document.
func (s *RecoveryService) Export(ctx context.Context) (*ExportDocument, error) {
	domainGroups, _, err := s.datasets.DomainGroups.Load(ctx)
	if err != nil {
		return nil, err
	}
	segments, err := datastore.GetTyped[hierarchy.IndustrySegment](ctx, s.datasets.Records, DatasetIndustrySegments)
	if err != nil {
		return nil, err
	}
	countries, _, err := s.datasets.Countries.Load(ctx)
	if err != nil {
		return nil, err
	}
	organizationTypes, _, err := s.datasets.OrganizationTypes.Load(ctx)
	if err != nil {
		return nil, err
	}
	capabilityLevels, _, err := s.datasets.CapabilityLevels.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ExportDocument{
		DomainGroups:      domainGroups,
		IndustrySegments:  segments,
		Countries:         countries,
		OrganizationTypes: organizationTypes,
		CapabilityLevels:  capabilityLevels,
		ExportTimestamp:   time.Now().UTC(),
		Version:           ExportVersion,
	}, nil
}

// Import replaces every dataset with the document's contents. Parsing
// or validation failure leaves the store untouched.
func (s *RecoveryService) Import(ctx context.Context, payload []byte) (*ExportDocument, error) {
	var doc ExportDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if doc.Version != ExportVersion {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrUnsupportedBackup, doc.Version, ExportVersion)
	}
	if err := s.validate(&doc); err != nil {
		return nil, err
	}

	if err := datastore.SaveTyped(ctx, s.datasets.Records, DatasetIndustrySegments, doc.IndustrySegments); err != nil {
		return nil, err
	}
	if err := s.datasets.DomainGroups.Save(ctx, doc.DomainGroups); err != nil {
		return nil, err
	}
	if err := s.datasets.Countries.Save(ctx, doc.Countries); err != nil {
		return nil, err
	}
	if err := s.datasets.OrganizationTypes.Save(ctx, doc.OrganizationTypes); err != nil {
		return nil, err
	}
	if err := s.datasets.CapabilityLevels.Save(ctx, doc.CapabilityLevels); err != nil {
		return nil, err
	}

	if s.log != nil {
		s.log.WithFields(logrus.Fields{
			"domainGroups": len(doc.DomainGroups.DomainGroups),
			"segments":     len(doc.IndustrySegments),
			"exportedAt":   doc.ExportTimestamp,
		}).Info("recovery: backup imported")
	}
	return &doc, nil
}

func (s *RecoveryService) validate(doc *ExportDocument) error {
	if err := doc.DomainGroups.Validate(); err != nil {
		return fmt.Errorf("%w: domain groups: %v", ErrInvalidBackup, err)
	}
	if err := doc.DomainGroups.ValidateReferences(); err != nil {
		return fmt.Errorf("%w: domain groups: %v", ErrInvalidBackup, err)
	}
	for _, segment := range doc.IndustrySegments {
		if err := hierarchy.ValidateSegment(segment); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
		}
	}
	if err := reference.ValidateCountries(doc.Countries); err != nil {
		return fmt.Errorf("%w: countries: %v", ErrInvalidBackup, err)
	}
	if err := reference.ValidateOrganizationTypes(doc.OrganizationTypes); err != nil {
		return fmt.Errorf("%w: organization types: %v", ErrInvalidBackup, err)
	}
	if err := capability.ValidateLevels(doc.CapabilityLevels); err != nil {
		return fmt.Errorf("%w: capability levels: %v", ErrInvalidBackup, err)
	}
	return nil
}

// Health reports per-dataset status without repairing anything.
func (s *RecoveryService) Health(ctx context.Context) map[string]datastore.DatasetHealth {
	return s.datasets.Registry.SystemHealth(ctx)
}

// RestoreDefaults reseeds every registered dataset. Failures are
// per-dataset; one broken dataset does not stop the others.
func (s *RecoveryService) RestoreDefaults(ctx context.Context) error {
	failures := s.datasets.Registry.SeedAll(ctx)
	if len(failures) == 0 {
		return nil
	}
	names := make([]string, 0, len(failures))
	for name := range failures {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s: %v", name, failures[name])
	}
	return fmt.Errorf("restore defaults failed for %s", strings.Join(parts, "; "))
}

// ClearAll deletes every dataset document. The next load of each
// dataset reseeds it.
func (s *RecoveryService) ClearAll(ctx context.Context) error {
	keys := []string{
		DatasetDomainGroups,
		DatasetIndustrySegments,
		DatasetCountries,
		DatasetOrganizationTypes,
		DatasetCapabilityLevels,
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to clear dataset %s: %w", key, err)
		}
	}
	if s.log != nil {
		s.log.Warn("recovery: all datasets cleared")
	}
	return nil
}
