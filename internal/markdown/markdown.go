// Package markdown converts trusted markdown documents into HTML fragments.
package markdown

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// lazyImage is the attribute injected into every emitted image tag.
const lazyImage = `loading="lazy"`

// Renderer turns markdown into HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with tables and strikethrough enabled. Raw HTML in the
// source is passed through untouched, so sources must be trusted.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts src to HTML and marks every image for lazy loading.
func (r *Renderer) Render(src string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return ""
	}
	return LazyImages(buf.String())
}

// imgTag matches the opening of an image tag in any letter case, up to the
// whitespace before its first attribute or the end of the tag.
var imgTag = regexp.MustCompile(`(?i)<(img)(\s|/?>)`)

// LazyImages injects loading="lazy" into each <img tag. The tag name, the
// separator after it and the remaining attributes are left as they were.
func LazyImages(fragment string) string {
	return imgTag.ReplaceAllString(fragment, "<${1} "+lazyImage+"${2}")
}

var defaultRenderer = New()

// Render converts src with the package default Renderer.
func Render(src string) string {
	return defaultRenderer.Render(src)
}
