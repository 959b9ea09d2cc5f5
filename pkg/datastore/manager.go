// Package datastore layers dataset semantics over pkg/kv: schema
// versioning with self-healing reseed, a registry used by health checks
// and disaster recovery, and the collection/record view consumed by the
// table-backed parts of the console.
package datastore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/strata-hq/masterdata/pkg/kv"
	"github.com/strata-hq/masterdata/pkg/serrors"
)

var ErrInvalidData = serrors.NewError(
	"DATASTORE_INVALID_DATA",
	"dataset failed validation",
	"refusing to overwrite the stored document",
)

// envelope wraps every stored payload with its schema version so
// staleness detection is a single read.
type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Payload       json.RawMessage `json:"payload"`
}

// ReseedReason explains why Load fell back to seed data.
type ReseedReason string

const (
	ReseedMissing ReseedReason = "missing"
	ReseedStale   ReseedReason = "stale"
	ReseedCorrupt ReseedReason = "corrupt"
	ReseedInvalid ReseedReason = "invalid"
	ReseedForced  ReseedReason = "forced"
)

// LoadInfo reports what Load had to do. Reseeded is the observable
// "we just threw the stored document away" signal higher layers can
// surface to the user.
type LoadInfo struct {
	Reseeded bool
	Reason   ReseedReason
}

// Config describes one managed dataset.
type Config[T any] struct {
	Key     string
	Version int
	// Seed produces a fresh default document. Called whenever the
	// stored document is missing, stale or unusable.
	Seed func() T
	// Validate guards Save and corrupt-detection on Load. Optional.
	Validate func(T) error
	Log      *logrus.Logger
}

// Manager owns read/write of one versioned JSON document. Datasets are
// UI configuration, not a system of record: Load never fails on bad
// stored content, it repairs and reports.
type Manager[T any] struct {
	store kv.Store
	cfg   Config[T]
}

func NewManager[T any](store kv.Store, cfg Config[T]) (*Manager[T], error) {
	if cfg.Key == "" {
		return nil, fmt.Errorf("datastore: dataset key is required")
	}
	if cfg.Seed == nil {
		return nil, fmt.Errorf("datastore: seed function is required for %s", cfg.Key)
	}
	return &Manager[T]{store: store, cfg: cfg}, nil
}

func (m *Manager[T]) Key() string {
	return m.cfg.Key
}

// Load returns the current document, reseeding when the stored one is
// missing, from another schema version, or unusable. Only storage
// failures surface as errors.
func (m *Manager[T]) Load(ctx context.Context) (T, LoadInfo, error) {
	var zero T

	raw, ok, err := m.store.Get(ctx, m.cfg.Key)
	if err != nil {
		return zero, LoadInfo{}, err
	}
	if !ok {
		return m.reseed(ctx, ReseedMissing)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return m.reseed(ctx, ReseedCorrupt)
	}
	if env.SchemaVersion != m.cfg.Version {
		return m.reseed(ctx, ReseedStale)
	}

	var data T
	if err := json.Unmarshal(env.Payload, &data); err != nil {
		return m.reseed(ctx, ReseedCorrupt)
	}
	if m.cfg.Validate != nil {
		if err := m.cfg.Validate(data); err != nil {
			return m.reseed(ctx, ReseedInvalid)
		}
	}
	return data, LoadInfo{}, nil
}

// Save validates data and replaces the stored document atomically.
// Invalid data is rejected before the store is touched.
func (m *Manager[T]) Save(ctx context.Context, data T) error {
	if m.cfg.Validate != nil {
		if err := m.cfg.Validate(data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidData, m.cfg.Key, err)
		}
	}
	return m.write(ctx, data)
}

// ForceReseed discards the stored document and rewrites it from seed.
func (m *Manager[T]) ForceReseed(ctx context.Context) (T, error) {
	data, _, err := m.reseed(ctx, ReseedForced)
	return data, err
}

// Reseed is ForceReseed without the typed result, for Registry use.
func (m *Manager[T]) Reseed(ctx context.Context) error {
	_, err := m.ForceReseed(ctx)
	return err
}

// Health inspects the stored document without mutating it.
func (m *Manager[T]) Health(ctx context.Context) DatasetHealth {
	health := DatasetHealth{}

	raw, ok, err := m.store.Get(ctx, m.cfg.Key)
	if err != nil {
		health.Error = err.Error()
		return health
	}
	if !ok {
		return health
	}
	health.Present = true

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		health.Error = err.Error()
		return health
	}
	if env.SchemaVersion != m.cfg.Version {
		health.Error = fmt.Sprintf("schema version %d, want %d", env.SchemaVersion, m.cfg.Version)
		return health
	}

	var data T
	if err := json.Unmarshal(env.Payload, &data); err != nil {
		health.Error = err.Error()
		return health
	}
	health.Loadable = true

	if m.cfg.Validate != nil {
		if err := m.cfg.Validate(data); err != nil {
			health.Error = err.Error()
			return health
		}
	}
	health.Valid = true
	return health
}

func (m *Manager[T]) reseed(ctx context.Context, reason ReseedReason) (T, LoadInfo, error) {
	var zero T
	data := m.cfg.Seed()
	if err := m.write(ctx, data); err != nil {
		return zero, LoadInfo{}, err
	}
	if m.cfg.Log != nil {
		m.cfg.Log.WithFields(logrus.Fields{
			"dataset": m.cfg.Key,
			"reason":  reason,
		}).Info("datastore: dataset reseeded")
	}
	return data, LoadInfo{Reseeded: true, Reason: reason}, nil
}

func (m *Manager[T]) write(ctx context.Context, data T) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", m.cfg.Key, err)
	}
	doc, err := json.Marshal(envelope{
		SchemaVersion: m.cfg.Version,
		Payload:       payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope for %s: %w", m.cfg.Key, err)
	}
	return m.store.Set(ctx, m.cfg.Key, doc)
}
