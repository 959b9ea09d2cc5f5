package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/strata-hq/masterdata/internal/server"
	"github.com/strata-hq/masterdata/pkg/configuration"
	"github.com/strata-hq/masterdata/pkg/eventbus"
	"github.com/strata-hq/masterdata/pkg/kv"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	store, err := kv.Open(ctx, kv.Options{
		Driver:      conf.Store.Driver,
		DataDir:     conf.Store.DataDir,
		RedisURL:    conf.Store.RedisURL,
		PostgresDSN: conf.Database.Opts,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to open document store")
	}

	srv, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Store:         store,
		EventBus:      eventbus.NewEventPublisher(logger),
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to assemble server")
	}

	logger.WithField("address", conf.SocketAddress).Info("master data console listening")
	if err := srv.Start(conf.SocketAddress); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
