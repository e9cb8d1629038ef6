package site

import (
	"encoding/xml"
	"io"
	"strings"

	"hvacguide/internal/domain"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemap listing the home page, every hub and every
// article. lastmod comes from each article's resolved modified date.
func WriteSitemap(w io.Writer, baseURL string, articles []domain.Article, clusters []domain.ClusterSummary) error {
	set := urlSet{XMLNS: sitemapNS}
	set.URLs = append(set.URLs, sitemapURL{Loc: absoluteURL(baseURL, "/")})

	for _, c := range clusters {
		set.URLs = append(set.URLs, sitemapURL{Loc: absoluteURL(baseURL, c.Path())})
	}
	for i := range articles {
		a := &articles[i]
		u := sitemapURL{Loc: absoluteURL(baseURL, a.Permalink())}
		if !a.Modified.IsZero() {
			u.LastMod = a.Modified.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func absoluteURL(baseURL, path string) string {
	return strings.TrimSuffix(baseURL, "/") + path
}
