package site

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"github.com/amitrahman1026/personal-site/internal/fetch"
	"github.com/amitrahman1026/personal-site/internal/panel"
	"github.com/amitrahman1026/personal-site/internal/theme"
)

// sharedFetcher lets concurrent fragment requests for the same resolved URL
// share one upstream GET. Nothing is kept once the GET completes.
type sharedFetcher struct {
	group  *singleflight.Group
	client *fetch.Client
}

func (f *sharedFetcher) Fetch(ctx context.Context, path string) (string, error) {
	key, err := f.client.Resolve(path)
	if err != nil {
		return "", err
	}
	// The shared GET outlives any single caller; each caller stops waiting
	// on its own context.
	ch := f.group.DoChan(key, func() (interface{}, error) {
		return f.client.Fetch(context.WithoutCancel(ctx), path)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// handlePanel runs one markdown panel to completion and returns its
// fragment. On failure it answers 204 so the page keeps its placeholder.
func (s *Server) handlePanel(c *gin.Context) {
	src := c.Query("src")
	if !strings.HasPrefix(src, "/") || strings.HasPrefix(src, "//") {
		c.String(http.StatusBadRequest, "src must be a root-relative resource path")
		return
	}

	fetcher := &sharedFetcher{
		group:  &s.fetches,
		client: fetch.New(s.contentOrigin(c), fetch.WithHTTPClient(s.httpClient)),
	}

	var fragment string
	p := panel.New(fetcher,
		panel.WithRenderer(s.renderer.Render),
		panel.WithLogger(s.logger),
		panel.OnContentUpdated(func(_, html string) {
			fragment = s.highlighter.Apply(html)
		}),
	)

	if err := p.Load(c.Request.Context(), src); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	// The highlight pass is best effort; fall back to the plain render.
	if fragment == "" {
		fragment = p.State().Content
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fragment))
}

// contentOrigin is the origin markdown resources are resolved against: the
// configured content origin, or this host's own /content mount. It is empty
// when the request carries no host.
func (s *Server) contentOrigin(c *gin.Context) string {
	if s.cfg.ContentOrigin != "" {
		return s.cfg.ContentOrigin
	}
	host := c.Request.Host
	if host == "" {
		return ""
	}
	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + host + s.cfg.BasePath + contentPrefix
}

func (s *Server) handleHighlightCSS(c *gin.Context) {
	name := strings.TrimSuffix(c.Param("file"), ".css")
	th, ok := theme.Parse(name)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	var b strings.Builder
	if err := s.highlighter.WriteCSS(&b, th.HighlightStyle()); err != nil {
		s.logger.Error("write highlight css", "theme", th, "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(b.String()))
}
