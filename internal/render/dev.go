package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaplineage/internal/lineage"
	"github.com/leapstack-labs/leaplineage/internal/mapping"
)

const defaultAddr = ":4173"

// liveReloadScript is appended to the page script block when watching, so
// connected browsers reload after a rebuild.
const liveReloadScript = `
    (function () {
      const source = new EventSource("/__reload");
      source.onmessage = function () { location.reload(); };
    })();`

// DevConfig configures a DevServer.
type DevConfig struct {
	Addr         string
	Input        string
	Watch        bool
	Placeholders []string
	Render       Options
	Logger       *slog.Logger
}

// DevServer serves the rendered lineage over HTTP, rebuilding it from the
// mapping file on change and pushing reload events to connected browsers.
type DevServer struct {
	addr         string
	input        string
	watch        bool
	placeholders []string
	render       Options
	logger       *slog.Logger

	mu   sync.RWMutex
	page []byte
	doc  *Document

	cmu     sync.Mutex
	clients map[chan struct{}]struct{}
}

// NewDevServer builds a DevServer from cfg. The first rebuild happens in Run,
// so a missing input file surfaces there.
func NewDevServer(cfg DevConfig) *DevServer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	return &DevServer{
		addr:         addr,
		input:        cfg.Input,
		watch:        cfg.Watch,
		placeholders: cfg.Placeholders,
		render:       cfg.Render,
		logger:       logger,
		clients:      make(map[chan struct{}]struct{}),
	}
}

// Run builds the artifact, then serves it until ctx is cancelled. The initial
// build must succeed; later rebuild failures are logged and the last good
// artifact stays up.
func (d *DevServer) Run(ctx context.Context) error {
	if err := d.rebuild(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              d.addr,
		Handler:           d.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	if d.watch {
		g.Go(func() error { return d.watchLoop(ctx) })
	}
	g.Go(func() error {
		d.logger.Info("serving lineage", "addr", d.addr, "input", d.input, "watch", d.watch)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (d *DevServer) handler() http.Handler {
	r := chi.NewMux()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/", d.handleIndex)
	r.Get("/graph.json", d.handleGraphJSON)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/__reload", d.handleReload)
	return r
}

func (d *DevServer) handleIndex(w http.ResponseWriter, _ *http.Request) {
	d.mu.RLock()
	page := d.page
	d.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (d *DevServer) handleGraphJSON(w http.ResponseWriter, _ *http.Request) {
	d.mu.RLock()
	doc := d.doc
	d.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		d.logger.Warn("failed to encode document", "error", err)
	}
}

// handleReload streams server-sent reload events until the client leaves.
func (d *DevServer) handleReload(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan struct{}, 1)
	d.addClient(ch)
	defer d.removeClient(ch)

	fmt.Fprintf(w, "data: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			fmt.Fprintf(w, "data: reload\n\n")
			flusher.Flush()
		}
	}
}

// watchLoop watches the input's directory and rebuilds after a quiet period.
// Editors often replace files via rename, so events are matched by base name.
func (d *DevServer) watchLoop(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(d.input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	var mu sync.Mutex
	var pending *time.Timer
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if pending != nil {
			pending.Stop()
		}
		pending = time.AfterFunc(100*time.Millisecond, func() {
			if err := d.rebuild(); err != nil {
				d.logger.Error("rebuild failed", "error", err)
				return
			}
			d.notify()
		})
	}

	base := filepath.Base(d.input)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			d.logger.Warn("watch error", "error", err)
		}
	}
}

// rebuild runs the parse/build/render pipeline and swaps in the new artifact.
func (d *DevServer) rebuild() error {
	result, err := mapping.ParseFile(d.input, mapping.Options{
		Placeholders: d.placeholders,
		Logger:       d.logger,
	})
	if err != nil {
		return err
	}
	for _, warn := range result.Warnings {
		d.logger.Warn("malformed mapping row", "row", warn.Row, "message", warn.Message)
	}

	g := lineage.Build(result.Records, lineage.BuildOptions{Placeholders: d.placeholders})
	doc := NewDocument(g)

	extra := ""
	if d.watch {
		extra = liveReloadScript
	}
	page, err := renderHTML(doc, d.render, extra)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.doc = doc
	d.page = page
	d.mu.Unlock()

	d.logger.Info("lineage rebuilt", "nodes", doc.Stats.NodeCount, "edges", doc.Stats.EdgeCount)
	return nil
}

func (d *DevServer) addClient(ch chan struct{}) {
	d.cmu.Lock()
	defer d.cmu.Unlock()
	d.clients[ch] = struct{}{}
}

func (d *DevServer) removeClient(ch chan struct{}) {
	d.cmu.Lock()
	defer d.cmu.Unlock()
	delete(d.clients, ch)
}

// notify pokes every connected reload client without blocking on slow ones.
func (d *DevServer) notify() {
	d.cmu.Lock()
	defer d.cmu.Unlock()
	for ch := range d.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
