package panel

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// gatedFetcher blocks each path until release is called for it.
type gatedFetcher struct {
	mu    sync.Mutex
	gates map[string]chan struct{}
	docs  map[string]string
}

func newGatedFetcher(docs map[string]string) *gatedFetcher {
	g := &gatedFetcher{gates: make(map[string]chan struct{}), docs: docs}
	for path := range docs {
		g.gates[path] = make(chan struct{})
	}
	return g
}

func (g *gatedFetcher) Fetch(ctx context.Context, path string) (string, error) {
	g.mu.Lock()
	gate := g.gates[path]
	g.mu.Unlock()
	if gate == nil {
		return "", errors.New("no such resource")
	}
	select {
	case <-gate:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return g.docs[path], nil
}

func (g *gatedFetcher) release(path string) {
	close(g.gates[path])
}

func staticFetcher(docs map[string]string) Fetcher {
	return FetcherFunc(func(_ context.Context, path string) (string, error) {
		src, ok := docs[path]
		if !ok {
			return "", errors.New("not found")
		}
		return src, nil
	})
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch did not settle")
	}
}

func TestNewPanelShowsPlaceholder(t *testing.T) {
	p := New(staticFetcher(nil))
	st := p.State()
	if st.Status != Loading || st.Content != Placeholder {
		t.Fatalf("unexpected initial state: %+v", st)
	}
}

func TestLoadRendersBlogList(t *testing.T) {
	p := New(staticFetcher(map[string]string{"/bloglist.md": "# Posts\n- [A](/blogposts/A)"}))

	if err := p.Load(context.Background(), "/bloglist.md"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	st := p.State()
	if st.Status != Loaded {
		t.Fatalf("status = %v, want loaded", st.Status)
	}
	got := strings.ReplaceAll(st.Content, "\n", "")
	want := `<h1>Posts</h1><ul><li><a href="/blogposts/A">A</a></li></ul>`
	if got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
}

func TestMountShowsPlaceholderUntilFetchResolves(t *testing.T) {
	f := newGatedFetcher(map[string]string{"/about_me.md": "hello"})
	p := New(f)

	done := p.Mount(context.Background(), "/about_me.md")
	if st := p.State(); st.Status != Loading || st.Content != Placeholder || st.URL != "/about_me.md" {
		t.Fatalf("state before resolve: %+v", st)
	}

	f.release("/about_me.md")
	wait(t, done)

	if st := p.State(); st.Status != Loaded || !strings.Contains(st.Content, "<p>hello</p>") {
		t.Fatalf("state after resolve: %+v", st)
	}
}

func TestFetchFailureStaysLoadingAndLogs(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	p := New(staticFetcher(nil), WithLogger(logger))

	err := p.Load(context.Background(), "/missing.md")
	if err == nil {
		t.Fatal("expected fetch error")
	}
	if st := p.State(); st.Status != Loading || st.Content != Placeholder {
		t.Fatalf("state after failure: %+v", st)
	}
	if !strings.Contains(logs.String(), "markdown fetch failed") || !strings.Contains(logs.String(), "/missing.md") {
		t.Fatalf("missing diagnostic log entry: %q", logs.String())
	}
}

func TestNewURLResetsToLoading(t *testing.T) {
	f := newGatedFetcher(map[string]string{"/a.md": "alpha", "/b.md": "beta"})
	p := New(f)

	f.release("/a.md")
	wait(t, p.Mount(context.Background(), "/a.md"))
	if st := p.State(); st.Status != Loaded {
		t.Fatalf("expected /a.md loaded, got %+v", st)
	}

	done := p.Mount(context.Background(), "/b.md")
	if st := p.State(); st.Status != Loading || st.Content != Placeholder || st.URL != "/b.md" {
		t.Fatalf("expected reset to loading for /b.md, got %+v", st)
	}

	f.release("/b.md")
	wait(t, done)
	if st := p.State(); !strings.Contains(st.Content, "beta") {
		t.Fatalf("expected beta content, got %+v", st)
	}
}

func TestLateResponseForSupersededURLIsDiscarded(t *testing.T) {
	f := newGatedFetcher(map[string]string{"/a.md": "alpha", "/b.md": "beta"})
	p := New(f)

	doneA := p.Mount(context.Background(), "/a.md")
	doneB := p.Mount(context.Background(), "/b.md")

	f.release("/b.md")
	wait(t, doneB)
	f.release("/a.md")
	wait(t, doneA)

	st := p.State()
	if st.URL != "/b.md" || st.Status != Loaded {
		t.Fatalf("unexpected final state: %+v", st)
	}
	if strings.Contains(st.Content, "alpha") || !strings.Contains(st.Content, "beta") {
		t.Fatalf("stale content leaked into panel: %q", st.Content)
	}
}

func TestSupersededLoadReturnsErrSuperseded(t *testing.T) {
	f := newGatedFetcher(map[string]string{"/a.md": "alpha", "/b.md": "beta"})
	p := New(f)

	errs := make(chan error, 1)
	go func() { errs <- p.Load(context.Background(), "/a.md") }()

	// Wait until the first load has claimed the panel.
	for p.State().URL != "/a.md" {
		time.Sleep(time.Millisecond)
	}

	f.release("/b.md")
	if err := p.Load(context.Background(), "/b.md"); err != nil {
		t.Fatalf("Load /b.md: %v", err)
	}
	f.release("/a.md")

	if err := <-errs; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
}

func TestMountSameURLIsNoop(t *testing.T) {
	calls := 0
	var mu sync.Mutex
	p := New(FetcherFunc(func(context.Context, string) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return "once", nil
	}))

	wait(t, p.Mount(context.Background(), "/a.md"))
	wait(t, p.Mount(context.Background(), "/a.md"))

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("fetch called %d times, want 1", calls)
	}
}

func TestContentUpdatedListener(t *testing.T) {
	var gotURL, gotHTML string
	p := New(staticFetcher(map[string]string{"/a.md": "```go\nx := 1\n```\n"}),
		OnContentUpdated(func(url, html string) {
			gotURL, gotHTML = url, html
		}))

	if err := p.Load(context.Background(), "/a.md"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotURL != "/a.md" || !strings.Contains(gotHTML, `class="language-go"`) {
		t.Fatalf("listener got (%q, %q)", gotURL, gotHTML)
	}
}

func TestPanickingListenerDoesNotUndoTransition(t *testing.T) {
	var logs bytes.Buffer
	p := New(staticFetcher(map[string]string{"/a.md": "text"}),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		OnContentUpdated(func(string, string) { panic("highlighter exploded") }))

	if err := p.Load(context.Background(), "/a.md"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st := p.State(); st.Status != Loaded {
		t.Fatalf("expected loaded state, got %+v", st)
	}
	if !strings.Contains(logs.String(), "content listener panicked") {
		t.Fatalf("expected panic to be logged, got %q", logs.String())
	}
}

func TestWithRenderer(t *testing.T) {
	p := New(staticFetcher(map[string]string{"/a.md": "raw"}), WithRenderer(strings.ToUpper))
	if err := p.Load(context.Background(), "/a.md"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := p.State().Content; got != "RAW" {
		t.Fatalf("content = %q, want RAW", got)
	}
}
