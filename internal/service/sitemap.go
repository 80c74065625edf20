package service

import (
	"encoding/xml"
	"strings"

	"github.com/batch26/keepsake/internal/model"
)

// sitemapEntries ranks the views. Dialogs and fragments are not listed.
var sitemapEntries = []struct {
	View       model.View
	Priority   string
	ChangeFreq string
}{
	{model.ViewHome, "1.0", "monthly"},
	{model.ViewTimeline, "0.8", "monthly"},
	{model.ViewYearbook, "0.8", "weekly"},
	{model.ViewVault, "0.7", "daily"},
	{model.ViewWall, "0.7", "daily"},
}

type SitemapService struct {
	baseURL string
	entropy entropy
}

func NewSitemapService(baseURL string) *SitemapService {
	return &SitemapService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		entropy: defaultEntropy(),
	}
}

// RobotsTxt allows everything and points crawlers at the sitemap.
func (s *SitemapService) RobotsTxt() []byte {
	return []byte("User-agent: *\nAllow: /\nSitemap: " + s.baseURL + "/sitemap.xml\n")
}

// GenerateSitemap lists every top-level view, stamped with today's date.
func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]model.SitemapURL, 0, len(sitemapEntries)),
	}

	today := s.entropy.today()
	for _, entry := range sitemapEntries {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + entry.View.Path(),
			LastMod:    today,
			ChangeFreq: entry.ChangeFreq,
			Priority:   entry.Priority,
		})
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), output...), nil
}
