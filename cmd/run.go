package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/modamart/shop-analytics/config"
	"github.com/modamart/shop-analytics/internal/analytics"
	httpapi "github.com/modamart/shop-analytics/internal/api/http"
	"github.com/modamart/shop-analytics/internal/store"
	"github.com/modamart/shop-analytics/log"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := log.New(cfg.Logger)
	slog.SetDefault(logger)

	db, err := store.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("cannot connect to the database %v", err.Error())
	}
	defer db.Close()

	svc := analytics.New(db.Analytics())

	srv := httpapi.New(&cfg.HTTP)
	if err := srv.Start(ctx, svc, db.Ping); err != nil {
		return fmt.Errorf("cannot start the http server %v", err.Error())
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	select {
	case s := <-sigCh:
		logger.With("signal", s.String()).Warn("signal received, exiting")
		cancel()
		<-srv.Done()
		logger.Info("application exited")
	case <-srv.Done():
		logger.Error("application exited")
	}

	return nil
}
