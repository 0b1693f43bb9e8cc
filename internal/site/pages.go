package site

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/amitrahman1026/personal-site/internal/panel"
	"github.com/amitrahman1026/personal-site/internal/route"
	"github.com/amitrahman1026/personal-site/internal/theme"
)

// view names the template block that renders a page's main content.
type view string

const (
	viewPanel    view = "panel"
	viewResume   view = "resume"
	viewProjects view = "projects"
	viewContact  view = "contact"
	viewNotFound view = "not_found"
)

// page is what the router hands to the shell for one route.
type page struct {
	View     view
	Title    string
	Status   int
	Resource string // markdown resource path for panel pages
}

// pageFor is the router's switch: every route kind maps to exactly one page.
func pageFor(rt route.Route) page {
	switch rt.Kind {
	case route.Home, route.AboutMe:
		return page{View: viewPanel, Title: "About Me", Status: http.StatusOK, Resource: rt.Resource()}
	case route.Blog:
		return page{View: viewPanel, Title: "Blog", Status: http.StatusOK, Resource: rt.Resource()}
	case route.BlogPost:
		return page{View: viewPanel, Title: postTitle(rt.Title), Status: http.StatusOK, Resource: rt.Resource()}
	case route.Resume:
		return page{View: viewResume, Title: "Resume", Status: http.StatusOK}
	case route.Projects:
		return page{View: viewProjects, Title: "Projects", Status: http.StatusOK}
	case route.Contact:
		return page{View: viewContact, Title: "Contact Me", Status: http.StatusOK}
	default:
		return page{View: viewNotFound, Title: "404", Status: http.StatusNotFound}
	}
}

// postTitle turns "my-first_post" into "My First Post" for the document title.
func postTitle(raw string) string {
	t := strings.NewReplacer("-", " ", "_", " ").Replace(raw)
	return cases.Title(language.English).String(t)
}

type navLink struct {
	Label  string
	Href   string
	Active bool
}

type shellData struct {
	Owner       string
	Base        string
	Theme       theme.Theme
	Classes     string
	Nav         []navLink
	Page        page
	PanelURL    string
	Placeholder string
	ResumeURL   string
	Projects    []project
	Contact     contactInfo
}

func (s *Server) handlePage(c *gin.Context) {
	rt := route.Route{Kind: route.NotFound}
	if p, ok := s.sitePath(c.Request.URL.EscapedPath()); ok {
		rt = route.Parse(p)
	}
	pg := pageFor(rt)

	th := s.preference(c).Current()
	data := shellData{
		Owner:       s.cfg.Owner,
		Base:        s.cfg.BasePath,
		Theme:       th,
		Classes:     strings.Join(th.ApplyTo([]string{"reader-mode"}), " "),
		Nav:         s.nav(rt),
		Page:        pg,
		Placeholder: panel.Placeholder,
		ResumeURL:   s.assetURL(route.ResumeDocument),
		Projects:    projects,
		Contact:     contact,
	}
	if pg.Resource != "" {
		data.PanelURL = s.link("/panel") + "?src=" + url.QueryEscape(pg.Resource)
	}

	c.HTML(pg.Status, "shell.gohtml", data)
}

func (s *Server) nav(current route.Route) []navLink {
	entries := []struct {
		label string
		kinds []route.Kind
		rt    route.Route
	}{
		{s.cfg.Owner, []route.Kind{route.Home, route.AboutMe}, route.Route{Kind: route.AboutMe}},
		{"Blog", []route.Kind{route.Blog, route.BlogPost}, route.Route{Kind: route.Blog}},
		{"Resume", []route.Kind{route.Resume}, route.Route{Kind: route.Resume}},
		{"Projects", []route.Kind{route.Projects}, route.Route{Kind: route.Projects}},
		{"Contact", []route.Kind{route.Contact}, route.Route{Kind: route.Contact}},
	}

	links := make([]navLink, 0, len(entries))
	for _, e := range entries {
		active := false
		for _, k := range e.kinds {
			if current.Kind == k {
				active = true
			}
		}
		links = append(links, navLink{Label: e.label, Href: s.link(e.rt.Path()), Active: active})
	}
	return links
}

// assetURL is the browser-facing URL of a static resource.
func (s *Server) assetURL(resource string) string {
	if s.cfg.ContentOrigin != "" {
		return strings.TrimSuffix(s.cfg.ContentOrigin, "/") + resource
	}
	return s.link(contentPrefix + resource)
}
