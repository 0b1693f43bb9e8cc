// Package site hosts the personal website: the shell with navigation and
// theme, the routed pages and the markdown panel fragments.
package site

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/amitrahman1026/personal-site/internal/config"
	"github.com/amitrahman1026/personal-site/internal/highlight"
	"github.com/amitrahman1026/personal-site/internal/logging"
	"github.com/amitrahman1026/personal-site/internal/markdown"
)

const (
	contentPrefix = "/content"
	assetsPrefix  = "/assets"
)

// Server wires handlers, templates and the markdown pipeline together.
type Server struct {
	cfg         config.Config
	engine      *gin.Engine
	renderer    *markdown.Renderer
	highlighter *highlight.Highlighter
	httpClient  *http.Client
	fetches     singleflight.Group
	logger      *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithHTTPClient sets the client used to fetch markdown resources.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Server) { s.httpClient = c }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New constructs the HTTP handler for the site.
func New(cfg config.Config, opts ...Option) (*Server, error) {
	tmpl, err := template.New("site").ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		renderer:    markdown.New(),
		highlighter: highlight.New(),
		httpClient:  &http.Client{},
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cfg.BasePath = config.NormalizeBasePath(s.cfg.BasePath)

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)
	r.Use(s.themeMiddleware())

	base := r.Group(s.cfg.BasePath)
	if s.cfg.ContentDir != "" {
		base.Static(contentPrefix, s.cfg.ContentDir)
	}
	base.GET(assetsPrefix+"/site.css", s.handleStylesheet)
	base.GET(assetsPrefix+"/highlight/:file", s.handleHighlightCSS)
	base.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Markdown panel fragment, pulled by the page shell once it is shown.
	base.GET("/panel", s.handlePanel)

	base.POST("/theme", s.handleToggleTheme)

	// Every other path is a page; unknown ones render the not-found page.
	r.NoRoute(s.handlePage)

	s.engine = r
	return s, nil
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// Handler returns the gin engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// link prefixes a site path with the deployment base path.
func (s *Server) link(path string) string {
	if path == "/" && s.cfg.BasePath != "" {
		return s.cfg.BasePath + "/"
	}
	return s.cfg.BasePath + path
}

// sitePath strips the base path from an escaped request path. ok is false
// when the request lies outside the base path.
func (s *Server) sitePath(escaped string) (string, bool) {
	if s.cfg.BasePath == "" {
		return escaped, true
	}
	rest, ok := strings.CutPrefix(escaped, s.cfg.BasePath)
	if !ok || (rest != "" && rest[0] != '/') {
		return "", false
	}
	if rest == "" {
		rest = "/"
	}
	return rest, true
}

func (s *Server) handleStylesheet(c *gin.Context) {
	css, err := assetFS.ReadFile("assets/site.css")
	if err != nil {
		s.logger.Error("read stylesheet", "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", css)
}
