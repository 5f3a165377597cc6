package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dracory/weeviz"
)

func main() {
	// Load configuration (flags override env)
	cfg, err := weeviz.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	level, _ := weeviz.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	app := weeviz.New(cfg)
	defer app.Close()

	if cfg.DatabasePath != "" {
		if err := app.OpenDatabase(context.Background(), weeviz.SQLITE, cfg.DatabasePath); err != nil {
			slog.Warn("could not open database on start", "path", cfg.DatabasePath, "error", err)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	slog.Info("WeeViz listening", "addr", addr, "mount", cfg.BasePath)

	mux := http.NewServeMux()
	mux.Handle(cfg.BasePath, app.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           weeviz.RequestLogger(mux, cfg.ActionParam),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
