package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"hvacguide/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names
const (
	pageHome     = "home"
	pageHub      = "hub"
	pageArticle  = "article"
	pageNotFound = "notfound"
)

// SiteInfo is the site-wide data every page receives
type SiteInfo struct {
	Title   string
	BaseURL string
}

type HomePage struct {
	Site     SiteInfo
	Clusters []domain.ClusterSummary
	Recent   []domain.Article
}

type HubPage struct {
	Site     SiteInfo
	Cluster  domain.ClusterSummary
	Articles []domain.Article
}

type ArticlePage struct {
	Site        SiteInfo
	Article     domain.Article
	Content     template.HTML
	Related     []domain.Article
	ClusterPath string
	Canonical   string
}

type NotFoundPage struct {
	Site SiteInfo
	Path string
}

// Renderer turns articles into HTML pages. It is safe for concurrent use.
type Renderer struct {
	site  SiteInfo
	md    goldmark.Markdown
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer(site SiteInfo) (*Renderer, error) {
	funcs := template.FuncMap{
		"date": formatDate,
	}

	pages := make(map[string]*template.Template)
	for _, name := range []string{pageHome, pageHub, pageArticle, pageNotFound} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)

	return &Renderer{site: site, md: md, pages: pages}, nil
}

// Site returns the site-wide page data
func (r *Renderer) Site() SiteInfo {
	return r.site
}

// Markdown converts an article body to HTML
func (r *Renderer) Markdown(body string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// NewArticlePage assembles the data of one article page
func (r *Renderer) NewArticlePage(a domain.Article, related []domain.Article) (*ArticlePage, error) {
	content, err := r.Markdown(a.Body)
	if err != nil {
		return nil, fmt.Errorf("article %s: %w", a.Slug, err)
	}

	page := &ArticlePage{
		Site:      r.site,
		Article:   a,
		Content:   content,
		Related:   related,
		Canonical: absoluteURL(r.site.BaseURL, a.Permalink()),
	}
	if a.Cluster != "" {
		page.ClusterPath = domain.ClusterSummary{Slug: domain.Slugify(a.Cluster)}.Path()
	}
	return page, nil
}

func (r *Renderer) RenderHome(w io.Writer, page *HomePage) error {
	return r.execute(w, pageHome, page)
}

func (r *Renderer) RenderHub(w io.Writer, page *HubPage) error {
	return r.execute(w, pageHub, page)
}

func (r *Renderer) RenderArticle(w io.Writer, page *ArticlePage) error {
	return r.execute(w, pageArticle, page)
}

func (r *Renderer) RenderNotFound(w io.Writer, path string) error {
	return r.execute(w, pageNotFound, &NotFoundPage{Site: r.site, Path: path})
}

// execute renders into a buffer first so a failing template never leaves
// a half-written page behind
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render %s page: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
