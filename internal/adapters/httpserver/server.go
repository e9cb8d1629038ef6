package httpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"hvacguide/internal/adapters/site"
	"hvacguide/internal/application"
	"hvacguide/internal/domain"
	"hvacguide/internal/ports"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server
type Options struct {
	Addr         string
	StaticDir    string
	RelatedLimit int
	Logger       *zap.Logger
	// OnListen is called with the bound address once connections are accepted
	OnListen func(addr net.Addr)
}

// Server renders pages on demand from the content repository, so a reload
// of the repository is visible on the next request
type Server struct {
	repo     ports.ContentRepository
	renderer *site.Renderer
	opts     Options
	logger   *zap.Logger
	handler  http.Handler
}

// New creates a preview server
func New(repo ports.ContentRepository, renderer *site.Renderer, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{repo: repo, renderer: renderer, opts: opts, logger: logger}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /topics/{cluster}", s.handleHub)
	mux.HandleFunc("GET /topics/{cluster}/{$}", s.handleHub)
	mux.HandleFunc("GET /{slug}", s.handleArticle)
	mux.HandleFunc("GET /{slug}/{$}", s.handleArticle)
	mux.HandleFunc("/", s.handleFallback)
	return s.logRequests(allowRead(mux))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("preview server listening", zap.String("addr", ln.Addr().String()))
	if s.opts.OnListen != nil {
		s.opts.OnListen(ln.Addr())
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	articles := s.repo.GetAllArticles()
	domain.SortByModified(articles)
	if len(articles) > 10 {
		articles = articles[:10]
	}
	page := &site.HomePage{
		Site:     s.renderer.Site(),
		Clusters: s.repo.ListClusters(),
		Recent:   articles,
	}
	s.render(w, r, func(b *bytes.Buffer) error { return s.renderer.RenderHome(b, page) })
}

func (s *Server) handleHub(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("cluster")
	for _, c := range s.repo.ListClusters() {
		if c.Slug != slug {
			continue
		}
		articles := s.repo.GetArticlesByCluster(c.Name)
		domain.OrderForHub(articles)
		page := &site.HubPage{Site: s.renderer.Site(), Cluster: c, Articles: articles}
		s.render(w, r, func(b *bytes.Buffer) error { return s.renderer.RenderHub(b, page) })
		return
	}
	s.notFound(w, r)
}

func (s *Server) handleArticle(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	a, err := s.repo.GetArticleBySlug(slug)
	if errors.Is(err, application.ErrNotFound) {
		if !s.serveStatic(w, r) {
			s.notFound(w, r)
		}
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	page, err := s.renderer.NewArticlePage(*a, s.repo.GetRelatedArticles(slug, s.opts.RelatedLimit))
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, func(b *bytes.Buffer) error { return s.renderer.RenderArticle(b, page) })
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := site.WriteSitemap(&buf, s.renderer.Site().BaseURL, s.repo.GetAllArticles(), s.repo.ListClusters()); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "ok %d articles\n", len(s.repo.GetAllSlugs()))
}

func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	if !s.serveStatic(w, r) {
		s.notFound(w, r)
	}
}

// serveStatic serves a file from the static directory, mirroring where the
// build copies assets. It reports whether a file was served.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) bool {
	if s.opts.StaticDir == "" {
		return false
	}
	rel := path.Clean("/" + r.URL.Path)
	file := filepath.Join(s.opts.StaticDir, filepath.FromSlash(rel))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeFile(w, r, file)
	return true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.serverError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	buf.WriteTo(w)
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.renderer.RenderNotFound(&buf, r.URL.Path); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// allowRead rejects every method but GET and HEAD
func allowRead(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
