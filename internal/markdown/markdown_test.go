package markdown

import (
	"strings"
	"testing"
)

func TestRenderBlogList(t *testing.T) {
	got := strings.ReplaceAll(Render("# Posts\n- [A](/blogposts/A)"), "\n", "")
	want := `<h1>Posts</h1><ul><li><a href="/blogposts/A">A</a></li></ul>`
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderExtensions(t *testing.T) {
	tests := map[string]struct {
		src  string
		want string
	}{
		"table":         {src: "| a | b |\n|---|---|\n| 1 | 2 |\n", want: "<table>"},
		"strikethrough": {src: "~~gone~~", want: "<del>gone</del>"},
		"fenced code":   {src: "```go\nfunc main() {}\n```\n", want: `<pre><code class="language-go">`},
		"inline code":   {src: "use `go test`", want: "<code>go test</code>"},
		"emphasis":      {src: "*soft* and **loud**", want: "<em>soft</em> and <strong>loud</strong>"},
		"raw html":      {src: "<div class=\"note\">hi</div>\n", want: `<div class="note">hi</div>`},
	}

	for name, tc := range tests {
		got := Render(tc.src)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("%s: Render(%q) = %q, missing %q", name, tc.src, got, tc.want)
		}
	}
}

func TestRenderHeadingsHaveNoIDs(t *testing.T) {
	if got := Render("## Title"); strings.Contains(got, "id=") {
		t.Fatalf("heading should not carry a generated id: %s", got)
	}
}

func TestRenderLazyImages(t *testing.T) {
	inputs := map[string]int{
		"no images":     0,
		"![one](a.png)": 1,
		"![one](a.png) ![two](b.png)\n\n![three](c.png \"C\")": 3,
		"<img src=\"raw.png\">\n\n![md](md.png)":               2,
	}

	for src, n := range inputs {
		got := Render(src)
		if c := strings.Count(got, "<img"); c != n {
			t.Fatalf("Render(%q) has %d <img> tags, want %d: %s", src, c, n, got)
		}
		if c := strings.Count(got, `<img loading="lazy" `); c != n {
			t.Fatalf("Render(%q) has %d lazy images, want %d: %s", src, c, n, got)
		}
	}
}

func TestRenderLazyRawImages(t *testing.T) {
	tests := map[string]struct {
		src  string
		want string
	}{
		"newline":      {src: "<img\nsrc=\"a.png\">", want: "<img loading=\"lazy\"\nsrc=\"a.png\">"},
		"tab":          {src: "<p><img\tsrc=\"c.png\"></p>", want: "<img loading=\"lazy\"\tsrc=\"c.png\">"},
		"uppercase":    {src: "<IMG src=\"b.png\">", want: "<IMG loading=\"lazy\" src=\"b.png\">"},
		"bare":         {src: "<p><img></p>", want: "<img loading=\"lazy\">"},
		"self-closing": {src: "<p><img/></p>", want: "<img loading=\"lazy\"/>"},
	}

	for name, tc := range tests {
		got := Render(tc.src)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("%s: Render(%q) = %q, missing %q", name, tc.src, got, tc.want)
		}
		if c := strings.Count(strings.ToLower(got), "<img"); c != 1 {
			t.Fatalf("%s: Render(%q) has %d image tags, want 1", name, tc.src, c)
		}
	}
}

func TestLazyImagesIgnoresOtherTags(t *testing.T) {
	in := `<imgx src="a"><p>img</p>`
	if got := LazyImages(in); got != in {
		t.Fatalf("LazyImages() = %q, want input unchanged", got)
	}
}

func TestLazyImagesPreservesAttributes(t *testing.T) {
	in := `<p><img src="a.png" alt="A" title="t"></p>`
	want := `<p><img loading="lazy" src="a.png" alt="A" title="t"></p>`
	if got := LazyImages(in); got != want {
		t.Fatalf("LazyImages() = %q, want %q", got, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	src := "# Notes\n\n| k | v |\n|---|---|\n| a | ~~b~~ |\n\n![img](x.png)\n"
	first := Render(src)
	if second := Render(src); first != second {
		t.Fatalf("Render is not deterministic:\n%s\n%s", first, second)
	}
	if other := New().Render(src); other != first {
		t.Fatalf("separate renderers disagree:\n%s\n%s", first, other)
	}
}
