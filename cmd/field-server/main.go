package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wiltonos/field-viz/pkg/field"
	"github.com/wiltonos/field-viz/pkg/fieldserv"
	"github.com/wiltonos/field-viz/pkg/store"
)

var (
	configFlag  = flag.String("config", "", "JSON config file (flags below override it)")
	addrFlag    = flag.String("addr", "", "Listen address (overrides config)")
	cadenceFlag = flag.Int("cadence-ms", 0, "Sample cadence in milliseconds (overrides config)")
	storeFlag   = flag.String("store-dir", "", "Coherence log directory (overrides config; empty keeps history in memory)")
)

func main() {
	flag.Parse()

	cfg := fieldserv.DefaultConfig()
	if *configFlag != "" {
		loaded, err := fieldserv.LoadConfigFileName(*configFlag)
		if err != nil {
			slog.Error("could not load config", slog.Any("Error", err))
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if *cadenceFlag > 0 {
		cfg.CadenceMS = *cadenceFlag
	}
	if *storeFlag != "" {
		cfg.StoreDir = *storeFlag
	}

	var coherenceLog *store.Log
	if cfg.StoreDir != "" {
		var err error
		coherenceLog, err = store.Open(cfg.StoreDir)
		if err != nil {
			slog.Error("could not open coherence log", slog.Any("Error", err))
			os.Exit(1)
		}
		defer coherenceLog.Close()
	}

	srv := fieldserv.NewServer(cfg, field.NewGenerator(cfg.Seed), coherenceLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.Run(ctx)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.SetupMux(),
	}
	go func() {
		slog.Info("field server listening", slog.String("Addr", cfg.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.Any("Error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", slog.Any("Error", err))
	}
}
