// Package highlight colours fenced code blocks in rendered HTML fragments.
package highlight

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"regexp"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var codeBlock = regexp.MustCompile(`(?s)<pre><code class="language-([^"\s]+)">(.*?)</code></pre>`)

// Highlighter rewrites language-tagged code blocks into chroma markup that
// is coloured by the stylesheet from WriteCSS.
type Highlighter struct {
	formatter *chromahtml.Formatter
}

// New returns a class-based Highlighter.
func New() *Highlighter {
	return &Highlighter{formatter: chromahtml.New(chromahtml.WithClasses(true))}
}

// Apply highlights every block whose language chroma knows. Blocks it cannot
// handle are left exactly as they were.
func (h *Highlighter) Apply(fragment string) string {
	return codeBlock.ReplaceAllStringFunc(fragment, func(block string) string {
		m := codeBlock.FindStringSubmatch(block)
		if len(m) != 3 {
			return block
		}
		out, err := h.code(m[1], html.UnescapeString(m[2]))
		if err != nil {
			return block
		}
		return out
	})
}

func (h *Highlighter) code(lang, source string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", fmt.Errorf("no lexer for %q", lang)
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, source)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, styles.Fallback, it); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HasStyle reports whether chroma ships a style with this name.
func HasStyle(name string) bool {
	_, ok := styles.Registry[name]
	return ok
}

// WriteCSS writes the stylesheet for the named chroma style.
func (h *Highlighter) WriteCSS(w io.Writer, style string) error {
	if !HasStyle(style) {
		return fmt.Errorf("unknown highlight style %q", style)
	}
	return h.formatter.WriteCSS(w, styles.Get(style))
}
