package site

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amitrahman1026/personal-site/internal/theme"
)

const (
	preferenceKey = "site.preference"
	cookieMaxAge  = 365 * 24 * 3600
)

// cookieStorage keeps the theme preference in the visitor's browser.
type cookieStorage struct {
	c    *gin.Context
	path string
}

func (s *cookieStorage) Get(key string) (string, bool, error) {
	v, err := s.c.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *cookieStorage) Set(key, value string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, cookieMaxAge, s.path, "", s.c.Request.TLS != nil, true)
	return nil
}

// themeMiddleware loads the visitor's theme before page and toggle
// handlers run. Assets, content and fragments skip it.
func (s *Server) themeMiddleware() gin.HandlerFunc {
	skip := []string{
		s.link(assetsPrefix + "/"),
		s.link(contentPrefix + "/"),
		s.link("/panel"),
		s.link("/healthz"),
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range skip {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		pref := theme.NewPreference(&cookieStorage{c: c, path: s.cookiePath()})
		if _, err := pref.Load(); err != nil {
			s.logger.Warn("load theme preference", "err", err)
		}
		c.Set(preferenceKey, pref)
		c.Next()
	}
}

func (s *Server) cookiePath() string {
	if s.cfg.BasePath == "" {
		return "/"
	}
	return s.cfg.BasePath
}

// preference returns the request's theme preference.
func (s *Server) preference(c *gin.Context) *theme.Preference {
	if v, ok := c.Get(preferenceKey); ok {
		if pref, ok := v.(*theme.Preference); ok {
			return pref
		}
	}
	return theme.NewPreference(theme.NewMemoryStorage())
}

func (s *Server) handleToggleTheme(c *gin.Context) {
	next, err := s.preference(c).Toggle()
	if err != nil {
		s.logger.Error("toggle theme", "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	s.logger.Debug("theme toggled", "theme", next)
	c.Redirect(http.StatusSeeOther, s.returnTo(c))
}

// returnTo is the page the toggle was pressed on, when the referer points
// back into this site; otherwise the home page.
func (s *Server) returnTo(c *gin.Context) string {
	home := s.link("/")
	ref, err := url.Parse(c.GetHeader("Referer"))
	if err != nil || ref.Host != c.Request.Host {
		return home
	}
	// "//host/x" and "/\host/x" are read by browsers as another origin.
	if strings.HasPrefix(ref.Path, "//") || strings.HasPrefix(ref.Path, "/\\") {
		return home
	}
	if _, ok := s.sitePath(ref.EscapedPath()); !ok {
		return home
	}
	return ref.RequestURI()
}
