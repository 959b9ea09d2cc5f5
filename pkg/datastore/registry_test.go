package datastore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strata-hq/masterdata/pkg/kv"
)

type failingDataset struct {
	key string
}

func (d *failingDataset) Key() string { return d.key }
func (d *failingDataset) Reseed(context.Context) error {
	return fmt.Errorf("seed exploded")
}
func (d *failingDataset) Health(context.Context) DatasetHealth {
	return DatasetHealth{Error: "seed exploded"}
}

type panickingDataset struct{}

func (d *panickingDataset) Key() string                          { return "panicky" }
func (d *panickingDataset) Reseed(context.Context) error         { panic("boom") }
func (d *panickingDataset) Health(context.Context) DatasetHealth { return DatasetHealth{} }

func TestRegistry_SeedAllIsolatesFailures(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	good := newTestManager(t, store, 1)

	registry := NewRegistry(nil)
	registry.Register(good)
	registry.Register(&failingDataset{key: "broken"})
	registry.Register(&panickingDataset{})

	failures := registry.SeedAll(ctx)
	assert.Len(t, failures, 2)
	assert.Contains(t, failures, "broken")
	assert.Contains(t, failures, "panicky")

	// The healthy dataset was still seeded.
	data, info, err := good.Load(ctx)
	require.NoError(t, err)
	assert.False(t, info.Reseeded)
	assert.Equal(t, []string{"seeded"}, data.Items)
}

func TestRegistry_SystemHealthHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	m := newTestManager(t, store, 1)

	registry := NewRegistry(nil)
	registry.Register(m)

	health := registry.SystemHealth(ctx)
	require.Contains(t, health, "test_dataset")
	assert.False(t, health["test_dataset"].Present)

	// The check must not have created the document.
	_, ok, err := store.Get(ctx, "test_dataset")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistry_Names(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Register(&failingDataset{key: "b"})
	registry.Register(&failingDataset{key: "a"})
	assert.Equal(t, []string{"a", "b"}, registry.Names())
}
