package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Assets
	AssetRoot string // URL prefix images are referenced and served under
	AssetDir  string // Directory holding the image files

	// Manifest
	ManifestPath   string // Empty means the embedded report
	WatchManifest  bool
	ReloadDebounce time.Duration

	// Collaborators
	TailwindURL  string
	KatexBaseURL string

	// Static build
	OutputPath string

	// HTTP server
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		AssetRoot: envOr("ASSET_ROOT", "/images"),
		AssetDir:  envOr("ASSET_DIR", "public/images"),

		ManifestPath:   os.Getenv("MANIFEST_PATH"),
		WatchManifest:  envBool("WATCH_MANIFEST", false),
		ReloadDebounce: envDuration("RELOAD_DEBOUNCE", 500*time.Millisecond),

		TailwindURL:  envOr("TAILWIND_URL", "https://cdn.tailwindcss.com"),
		KatexBaseURL: envOr("KATEX_BASE_URL", "https://cdn.jsdelivr.net/npm/katex@0.16.9/dist"),

		OutputPath: envOr("OUTPUT_PATH", "index.html"),

		ReadTimeout:     envDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    envDuration("WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:     envDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.ReloadDebounce <= 0 {
		cfg.ReloadDebounce = 500 * time.Millisecond
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	cfg.KatexBaseURL = strings.TrimRight(cfg.KatexBaseURL, "/")

	return cfg
}

func (c Config) Validate() error {
	if !strings.HasPrefix(c.AssetRoot, "/") {
		return fmt.Errorf("ASSET_ROOT must start with '/', got %q", c.AssetRoot)
	}
	if c.AssetRoot == "/" {
		return fmt.Errorf("ASSET_ROOT must not be '/'")
	}
	if c.WatchManifest && c.ManifestPath == "" {
		return fmt.Errorf("WATCH_MANIFEST requires MANIFEST_PATH")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("OUTPUT_PATH must not be empty")
	}
	return nil
}

// Stylesheets returns the stylesheet URLs of the page collaborators.
func (c Config) Stylesheets() []string {
	return []string{c.KatexBaseURL + "/katex.min.css"}
}

// Scripts returns the script URLs of the page collaborators.
func (c Config) Scripts() []string {
	return []string{c.TailwindURL, c.KatexBaseURL + "/katex.min.js"}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
