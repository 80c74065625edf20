package handler

import (
	"log/slog"
	"net/http"

	"github.com/batch26/keepsake/internal/service"
)

type SEOHandler struct {
	sitemapService *service.SitemapService
}

func NewSEOHandler(sitemapService *service.SitemapService) *SEOHandler {
	return &SEOHandler{
		sitemapService: sitemapService,
	}
}

func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := w.Write(h.sitemapService.RobotsTxt())
	if err != nil {
		slog.Debug("robots write failed", "error", err)
	}
}

// Sitemap serves sitemap.xml, generated per request.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	sitemap, err := h.sitemapService.GenerateSitemap()
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, err = w.Write(sitemap)
	if err != nil {
		slog.Debug("sitemap write failed", "error", err)
	}
}
