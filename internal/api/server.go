package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dgallion1/raytrace-report/internal/config"
	"github.com/dgallion1/raytrace-report/internal/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves the report page and its assets.
type Server struct {
	router chi.Router
	page   *render.Page
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(page *render.Page, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		page: page,
		log:  log,
		cfg:  cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handlePage)
	r.Get("/index.html", s.handlePage)
	r.Get("/manifest.json", s.handleManifest)

	root := strings.TrimRight(s.cfg.AssetRoot, "/")
	assets := http.StripPrefix(root, http.FileServer(http.Dir(s.cfg.AssetDir)))
	r.Method(http.MethodGet, root+"/*", noDirListing(assets))
	r.Method(http.MethodHead, root+"/*", noDirListing(assets))

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
