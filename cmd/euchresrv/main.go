package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decred/slog"

	"github.com/cardtable/euchre-rooms/internal/config"
	"github.com/cardtable/euchre-rooms/pkg/roomserver"
	"github.com/cardtable/euchre-rooms/pkg/store"
)

func main() {
	cfg := config.Parse()

	if err := config.EnsureDataDir(cfg.DBPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	logBackend := slog.NewBackend(os.Stderr)
	level, ok := slog.LevelFromString(cfg.DebugLevel)
	if !ok {
		level = slog.LevelInfo
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	registryLog := logBackend.Logger("ROOM")
	registryLog.SetLevel(level)

	registry := roomserver.NewRegistry(st, registryLog)
	if err := registry.Bootstrap(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to restore rooms: %v\n", err)
		os.Exit(1)
	}

	xprtLog := logBackend.Logger("XPRT")
	xprtLog.SetLevel(level)
	srv := roomserver.NewServer(registry, xprtLog)

	reapTicker := time.NewTicker(time.Minute)
	defer reapTicker.Stop()
	go func() {
		for range reapTicker.C {
			registry.ReapExpired()
		}
	}()

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.Mux(),
	}

	serveErr := make(chan error, 1)
	go func() {
		xprtLog.Infof("listening on %s", cfg.ListenAddr)
		serveErr <- httpSrv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "serve error: %v\n", err)
		}
	case <-sig:
		xprtLog.Info("shutting down")
		registry.Shutdown()
		httpSrv.Close()
	}
}
