package kv

import (
	"context"
	"fmt"
)

// Options selects a backend. Driver values mirror the KV_DRIVER
// configuration setting.
type Options struct {
	Driver      string
	DataDir     string
	RedisURL    string
	PostgresDSN string
}

// Open builds the store for the configured driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "file":
		return NewFileStore(opts.DataDir)
	case "postgres":
		return NewPostgresStore(ctx, opts.PostgresDSN)
	case "redis":
		return NewRedisStore(ctx, opts.RedisURL)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
