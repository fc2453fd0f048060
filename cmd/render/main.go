// Command render writes the report page as a standalone HTML file for
// static hosting. OUTPUT_PATH "-" writes to stdout.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/raytrace-report/internal/config"
	"github.com/dgallion1/raytrace-report/internal/layout"
	"github.com/dgallion1/raytrace-report/internal/manifest"
	"github.com/dgallion1/raytrace-report/internal/render"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	m, err := loadManifest(cfg)
	if err != nil {
		log.Error("load manifest", "error", err)
		os.Exit(1)
	}

	composer := render.NewComposer(layout.Assets{Root: cfg.AssetRoot}, render.Head{
		Stylesheets:  cfg.Stylesheets(),
		Scripts:      cfg.Scripts(),
		InlineScript: layout.KaTeXScript,
	})
	out, err := composer.RenderBytes(m)
	if err != nil {
		log.Error("render page", "error", err)
		os.Exit(1)
	}

	if cfg.OutputPath == "-" {
		if _, err := os.Stdout.Write(out); err != nil {
			log.Error("write page", "error", err)
			os.Exit(1)
		}
		return
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error("create output dir", "dir", dir, "error", err)
			os.Exit(1)
		}
	}
	if err := os.WriteFile(cfg.OutputPath, out, 0o644); err != nil {
		log.Error("write page", "path", cfg.OutputPath, "error", err)
		os.Exit(1)
	}
	log.Info("page written", "path", cfg.OutputPath, "bytes", len(out), "sections", len(m.Headings()))
}

func loadManifest(cfg config.Config) (*manifest.Manifest, error) {
	if cfg.ManifestPath == "" {
		return manifest.Default()
	}
	return manifest.LoadFile(cfg.ManifestPath)
}
