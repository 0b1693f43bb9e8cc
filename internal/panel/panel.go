// Package panel implements the markdown panel: a two-state machine that
// fetches a resource, renders it and exposes the result.
//
// A panel shows Placeholder until the fetch for its current URL succeeds.
// Pointing the panel at a different URL resets it to Loading; results of
// fetches started for an earlier URL are discarded when they arrive.
package panel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/amitrahman1026/personal-site/internal/markdown"
)

// Placeholder is displayed while a panel is loading.
const Placeholder = "Loading markdown file..."

// ErrSuperseded is returned by Load when the panel was pointed at another
// URL before the fetch completed.
var ErrSuperseded = errors.New("panel: superseded by a newer mount")

// Status is the panel's position in its state machine.
type Status int

const (
	Loading Status = iota
	Loaded
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Fetcher retrieves the raw markdown for a resource path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, path string) (string, error)

func (f FetcherFunc) Fetch(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}

// RenderFunc converts markdown to an HTML fragment.
type RenderFunc func(src string) string

// Listener is notified after the panel's content changed to html.
type Listener func(url, html string)

// State is a snapshot of the panel.
type State struct {
	URL     string
	Status  Status
	Content string
}

// Panel is safe for concurrent use.
type Panel struct {
	fetcher  Fetcher
	render   RenderFunc
	logger   *slog.Logger
	listener Listener

	mu      sync.Mutex
	gen     uint64
	mounted bool
	done    chan struct{}
	err     error
	state   State
}

// Option configures a Panel.
type Option func(*Panel)

// WithRenderer replaces the default markdown renderer.
func WithRenderer(fn RenderFunc) Option {
	return func(p *Panel) {
		if fn != nil {
			p.render = fn
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Panel) {
		if l != nil {
			p.logger = l
		}
	}
}

// OnContentUpdated registers fn to run after each Loading -> Loaded
// transition. It runs after the new state is visible and cannot undo it.
func OnContentUpdated(fn Listener) Option {
	return func(p *Panel) { p.listener = fn }
}

// New returns a panel in the Loading state.
func New(f Fetcher, opts ...Option) *Panel {
	p := &Panel{
		fetcher: f,
		render:  markdown.Render,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:   State{Status: Loading, Content: Placeholder},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the current snapshot.
func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mount points the panel at url and starts fetching it in the background.
// The returned channel is closed once that fetch has settled. Mounting the
// URL the panel already shows is a no-op.
func (p *Panel) Mount(ctx context.Context, url string) <-chan struct{} {
	gen, done, fresh := p.reset(url)
	if !fresh {
		return done
	}
	go func() {
		defer close(done)
		_ = p.run(ctx, gen, url)
	}()
	return done
}

// Load points the panel at url and fetches it before returning. The error
// is the fetch error, if any; the panel then stays in Loading.
func (p *Panel) Load(ctx context.Context, url string) error {
	gen, done, fresh := p.reset(url)
	if !fresh {
		<-done
		p.mu.Lock()
		defer p.mu.Unlock()
		if gen != p.gen {
			return ErrSuperseded
		}
		return p.err
	}
	defer close(done)
	return p.run(ctx, gen, url)
}

func (p *Panel) reset(url string) (uint64, chan struct{}, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mounted && p.state.URL == url {
		return p.gen, p.done, false
	}

	p.gen++
	p.mounted = true
	p.done = make(chan struct{})
	p.err = nil
	p.state = State{URL: url, Status: Loading, Content: Placeholder}
	return p.gen, p.done, true
}

func (p *Panel) run(ctx context.Context, gen uint64, url string) error {
	src, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		p.logger.Error("markdown fetch failed", "url", url, "err", err)
		p.mu.Lock()
		if gen == p.gen {
			p.err = err
		}
		p.mu.Unlock()
		return err
	}

	html := p.render(src)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		p.logger.Debug("discarding superseded markdown", "url", url)
		return ErrSuperseded
	}
	p.state = State{URL: url, Status: Loaded, Content: html}
	p.mu.Unlock()

	p.notify(url, html)
	return nil
}

func (p *Panel) notify(url, html string) {
	if p.listener == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("content listener panicked", "url", url, "panic", r)
		}
	}()
	p.listener(url, html)
}
