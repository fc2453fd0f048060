package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/raytrace-report/internal/api"
	"github.com/dgallion1/raytrace-report/internal/config"
	"github.com/dgallion1/raytrace-report/internal/layout"
	"github.com/dgallion1/raytrace-report/internal/manifest"
	"github.com/dgallion1/raytrace-report/internal/render"
	"github.com/dgallion1/raytrace-report/internal/watch"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	composer := render.NewComposer(layout.Assets{Root: cfg.AssetRoot}, render.Head{
		Stylesheets:  cfg.Stylesheets(),
		Scripts:      cfg.Scripts(),
		InlineScript: layout.KaTeXScript,
	})

	page, err := render.NewPage(composer, manifestSource(cfg))
	if err != nil {
		log.Error("render page", "error", err)
		os.Exit(1)
	}

	var watcher *watch.Watcher
	if cfg.WatchManifest {
		watcher, err = watch.New(cfg.ManifestPath, cfg.ReloadDebounce, page.Reload, log)
		if err != nil {
			log.Error("start manifest watcher", "error", err)
			os.Exit(1)
		}
		watcher.Start(ctx)
	}

	srv := api.NewServer(page, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		if watcher != nil {
			watcher.Stop()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting report server",
		"port", cfg.Port,
		"asset_root", cfg.AssetRoot,
		"asset_dir", cfg.AssetDir,
		"manifest", manifestName(cfg),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func manifestSource(cfg config.Config) render.Source {
	if cfg.ManifestPath == "" {
		return manifest.Default
	}
	return func() (*manifest.Manifest, error) {
		return manifest.LoadFile(cfg.ManifestPath)
	}
}

func manifestName(cfg config.Config) string {
	if cfg.ManifestPath == "" {
		return "embedded"
	}
	return cfg.ManifestPath
}
