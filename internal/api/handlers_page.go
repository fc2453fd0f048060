package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.page.Current()
	if snap == nil {
		jsonError(w, "page not rendered", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Last-Modified", snap.RenderedAt.UTC().Format(http.TimeFormat))
	w.Write(snap.HTML)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	snap := s.page.Current()
	if snap == nil {
		jsonError(w, "page not rendered", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"rendered_at": snap.RenderedAt.UTC().Format(time.RFC3339),
		"manifest":    snap.Manifest,
	})
}

// noDirListing hides directory indexes under the asset root.
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
