// Package route maps URL paths onto the site's closed set of pages.
package route

import (
	"net/url"
	"strings"
)

// Kind identifies a navigable page.
type Kind int

const (
	Home Kind = iota
	AboutMe
	Blog
	BlogPost
	Resume
	Projects
	Contact
	NotFound
)

var kindNames = map[Kind]string{
	Home:     "home",
	AboutMe:  "about_me",
	Blog:     "blog",
	BlogPost: "blogpost",
	Resume:   "resume",
	Projects: "projects",
	Contact:  "contact",
	NotFound: "not_found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Kinds lists every route kind.
func Kinds() []Kind {
	return []Kind{Home, AboutMe, Blog, BlogPost, Resume, Projects, Contact, NotFound}
}

// Resource paths of the static assets behind the pages.
const (
	AboutMeResource  = "/about_me.md"
	BlogListResource = "/bloglist.md"
	ResumeDocument   = "/resume/resume.pdf"
	blogPostPrefix   = "/blogposts/"
)

// Route is a parsed navigation target. Title is only set for BlogPost and
// always holds the decoded post title.
type Route struct {
	Kind  Kind
	Title string
}

var staticPaths = map[string]Kind{
	"/":         Home,
	"/about_me": AboutMe,
	"/blog":     Blog,
	"/resume":   Resume,
	"/projects": Projects,
	"/contact":  Contact,
}

// Parse maps an escaped URL path (without any deployment base path) to a
// route. Unknown paths yield NotFound.
func Parse(escapedPath string) Route {
	p := escapedPath
	if p == "" {
		p = "/"
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}

	if kind, ok := staticPaths[p]; ok {
		return Route{Kind: kind}
	}

	if raw, ok := strings.CutPrefix(p, blogPostPrefix); ok {
		if raw == "" || strings.Contains(raw, "/") {
			return Route{Kind: NotFound}
		}
		title, err := url.PathUnescape(raw)
		if err != nil || strings.TrimSpace(title) == "" || strings.Contains(title, "/") {
			return Route{Kind: NotFound}
		}
		return Route{Kind: BlogPost, Title: title}
	}

	return Route{Kind: NotFound}
}

// Post returns the route of the blog post with the given title.
func Post(title string) Route {
	return Route{Kind: BlogPost, Title: title}
}

// Path returns the canonical escaped URL path of r.
func (r Route) Path() string {
	switch r.Kind {
	case Home:
		return "/"
	case AboutMe:
		return "/about_me"
	case Blog:
		return "/blog"
	case BlogPost:
		return blogPostPrefix + url.PathEscape(r.Title)
	case Resume:
		return "/resume"
	case Projects:
		return "/projects"
	case Contact:
		return "/contact"
	default:
		return "/404"
	}
}

// Resource returns the markdown resource rendered for r, or "" when the
// page is not markdown-backed.
func (r Route) Resource() string {
	switch r.Kind {
	case Home, AboutMe:
		return AboutMeResource
	case Blog:
		return BlogListResource
	case BlogPost:
		return BlogPostResource(r.Title)
	default:
		return ""
	}
}

// BlogPostResource is the resource path of a post. Titles are always
// percent-encoded as a single path segment.
func BlogPostResource(title string) string {
	return blogPostPrefix + url.PathEscape(title)
}

func (r Route) String() string {
	if r.Kind == BlogPost {
		return r.Kind.String() + "(" + r.Title + ")"
	}
	return r.Kind.String()
}
