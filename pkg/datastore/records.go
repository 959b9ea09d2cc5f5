package datastore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/strata-hq/masterdata/pkg/kv"
	"github.com/strata-hq/masterdata/pkg/serrors"
)

var ErrRecordNotFound = serrors.NewError("DATASTORE_RECORD_NOT_FOUND", "record not found", "")

// Record is one row of a named collection. Records carry an opaque
// string id under the "id" key.
type Record map[string]any

func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// RecordStore is the keyed-record view of the backing store: the same
// contract the console expects of its remote table-backed service.
// Every call is fallible; callers must not assume success.
type RecordStore interface {
	GetItems(ctx context.Context, collection string) ([]Record, error)
	AddItem(ctx context.Context, collection string, record Record) error
	UpdateItem(ctx context.Context, collection string, id string, patch Record) error
	DeleteItem(ctx context.Context, collection string, id string) error
	// SaveItems replaces the whole collection atomically.
	SaveItems(ctx context.Context, collection string, records []Record) error
}

// kvRecordStore keeps each collection as one JSON array document, so
// replace-all is a single atomic Set.
type kvRecordStore struct {
	store kv.Store
}

func NewRecordStore(store kv.Store) RecordStore {
	return &kvRecordStore{store: store}
}

func (s *kvRecordStore) GetItems(ctx context.Context, collection string) ([]Record, error) {
	raw, ok, err := s.store.Get(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("collection %s is not a record array: %w", collection, err)
	}
	return records, nil
}

func (s *kvRecordStore) AddItem(ctx context.Context, collection string, record Record) error {
	records, err := s.GetItems(ctx, collection)
	if err != nil {
		return err
	}
	return s.SaveItems(ctx, collection, append(records, record))
}

func (s *kvRecordStore) UpdateItem(ctx context.Context, collection string, id string, patch Record) error {
	records, err := s.GetItems(ctx, collection)
	if err != nil {
		return err
	}
	for i, record := range records {
		if record.ID() != id {
			continue
		}
		for key, value := range patch {
			if key == "id" {
				continue
			}
			record[key] = value
		}
		records[i] = record
		return s.SaveItems(ctx, collection, records)
	}
	return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, id)
}

func (s *kvRecordStore) DeleteItem(ctx context.Context, collection string, id string) error {
	records, err := s.GetItems(ctx, collection)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, record := range records {
		if record.ID() != id {
			kept = append(kept, record)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, collection, id)
	}
	return s.SaveItems(ctx, collection, kept)
}

func (s *kvRecordStore) SaveItems(ctx context.Context, collection string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", collection, err)
	}
	return s.store.Set(ctx, collection, raw)
}

// GetTyped decodes a whole collection into typed values.
func GetTyped[T any](ctx context.Context, store RecordStore, collection string) ([]T, error) {
	records, err := store.GetItems(ctx, collection)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("collection %s does not decode into %T: %w", collection, out, err)
	}
	return out, nil
}

// SaveTyped replaces a whole collection with typed values.
func SaveTyped[T any](ctx context.Context, store RecordStore, collection string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	var records []Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("items for %s are not record-shaped: %w", collection, err)
	}
	return store.SaveItems(ctx, collection, records)
}

// AddTyped appends one typed record to a collection.
func AddTyped[T any](ctx context.Context, store RecordStore, collection string, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return fmt.Errorf("item for %s is not record-shaped: %w", collection, err)
	}
	return store.AddItem(ctx, collection, record)
}
