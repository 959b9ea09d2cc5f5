package datastore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

// Dataset is the registry's view of a managed dataset. Every
// Manager[T] satisfies it regardless of payload type.
type Dataset interface {
	Key() string
	Reseed(ctx context.Context) error
	Health(ctx context.Context) DatasetHealth
}

// DatasetHealth summarizes one dataset without side effects.
type DatasetHealth struct {
	Present  bool   `json:"present"`
	Loadable bool   `json:"loadable"`
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
}

// Registry tracks every managed dataset for health checks and disaster
// recovery. Construct one per process and pass it explicitly; tests
// get isolated instances for free.
type Registry struct {
	mu       sync.RWMutex
	datasets map[string]Dataset
	log      *logrus.Logger
}

func NewRegistry(log *logrus.Logger) *Registry {
	return &Registry{
		datasets: make(map[string]Dataset),
		log:      log,
	}
}

func (r *Registry) Register(ds Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.datasets[ds.Key()] = ds
}

func (r *Registry) Dataset(name string) (Dataset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ds, ok := r.datasets[name]
	return ds, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.datasets))
	for name := range r.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SeedAll reseeds every registered dataset. One failing dataset must
// not stop the others; failures come back in the result map.
func (r *Registry) SeedAll(ctx context.Context) map[string]error {
	failures := make(map[string]error)
	for _, name := range r.Names() {
		ds, _ := r.Dataset(name)
		if err := r.seedOne(ctx, ds); err != nil {
			failures[name] = err
			if r.log != nil {
				r.log.WithError(err).Errorf("registry: failed to seed %s", name)
			}
		}
	}
	return failures
}

func (r *Registry) seedOne(ctx context.Context, ds Dataset) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("seed panicked: %v", rec)
		}
	}()
	return ds.Reseed(ctx)
}

// SystemHealth reports the advisory health of every dataset. It
// performs no writes.
func (r *Registry) SystemHealth(ctx context.Context) map[string]DatasetHealth {
	health := make(map[string]DatasetHealth)
	for _, name := range r.Names() {
		ds, _ := r.Dataset(name)
		health[name] = ds.Health(ctx)
	}
	return health
}
