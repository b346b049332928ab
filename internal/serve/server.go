package serve

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"folio/internal/app"
	"folio/internal/domain/config"
	domainerr "folio/internal/domain/errors"
	"folio/internal/domain/site"

	"github.com/fsnotify/fsnotify"
)

type Options struct {
	Config config.Config
	Site   *app.Site
	// Theme supplies static/ assets served under /static/.
	Theme fs.FS
	// WatchDir is walked recursively for changes; empty disables watching.
	WatchDir string
	Metrics  *Metrics
	Logger   *slog.Logger
}

type Server struct {
	cfg      config.Config
	site     *app.Site
	theme    fs.FS
	watchDir string
	metrics  *Metrics
	log      *slog.Logger

	mu   sync.RWMutex
	snap *app.Snapshot

	sseMu    sync.Mutex
	sseConns map[chan string]struct{}
}

func New(opt Options) *Server {
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &Server{
		cfg:      opt.Config,
		site:     opt.Site,
		theme:    opt.Theme,
		watchDir: opt.WatchDir,
		metrics:  opt.Metrics,
		log:      opt.Logger,
		sseConns: make(map[chan string]struct{}),
	}
}

// ListenAndServe loads content, starts the watcher and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if err := s.Rebuild(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- s.Watch(ctx)
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info("listening", "addr", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	cancel()
	if werr := <-watchErr; err == nil && werr != nil && !errors.Is(werr, context.Canceled) {
		err = werr
	}
	return err
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/dev/events", s.handleSSE)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	if s.theme != nil {
		if static, err := fs.Sub(s.theme, "static"); err == nil {
			mux.Handle("/static/", http.StripPrefix("/static/", http.FileServerFS(static)))
		}
	}
	mux.HandleFunc("/", s.handlePage)
	return mux
}

// Rebuild reloads the blog collection and tells connected browsers to
// refresh. The previous snapshot stays in place when loading fails.
func (s *Server) Rebuild(ctx context.Context) error {
	start := time.Now()
	snap, err := s.site.Snapshot(ctx)
	if s.metrics != nil {
		s.metrics.RebuildDurationSeconds.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.RebuildsTotal.WithLabelValues("error").Inc()
		}
		return fmt.Errorf("rebuild: %w", err)
	}
	for _, w := range snap.Warnings {
		s.log.Warn("content warning", "path", w.Path, "msg", w.Msg)
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RebuildsTotal.WithLabelValues("ok").Inc()
		s.metrics.Posts.Set(float64(len(snap.Posts)))
		s.metrics.Series.Set(float64(len(snap.Series)))
		s.metrics.Warnings.Set(float64(len(snap.Warnings)))
	}
	s.log.Info("rebuild complete", "posts", len(snap.Posts), "series", len(snap.Series), "took", time.Since(start))
	s.broadcastSSE("reload")
	return nil
}

func (s *Server) snapshot() *app.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Watch rebuilds after file changes under the watch directory settle. It
// blocks until ctx is done.
func (s *Server) Watch(ctx context.Context) error {
	if s.watchDir == "" {
		<-ctx.Done()
		return ctx.Err()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: %w", err)
	}
	defer w.Close()

	if err := addTree(w, s.watchDir); err != nil {
		s.log.Warn("watch setup", "dir", s.watchDir, "error", err)
	}
	s.log.Debug("watching for file changes", "dir", s.watchDir)

	delay := s.cfg.Serve.Debounce
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}
	timer := time.NewTimer(delay)
	timer.Stop()
	defer timer.Stop()
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addTree(w, ev.Name)
				}
			}
			timer.Reset(delay)
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", "error", err)
		case <-fire:
			fire = nil
			rctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := s.Rebuild(rctx); err != nil {
				s.log.Error("rebuild failed", "error", err)
			}
			cancel()
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 8)

	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseConns, ch)
		s.sseMu.Unlock()
	}()
	fmt.Fprintf(w, "data: %s\n\n", "hello")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-ch:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastSSE(msg string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- msg:
		default:
		}
	}
}

// routeFor maps a request path onto a planned route. Draft posts are not
// planned, so with include_draft they are resolved by slug directly.
func (s *Server) routeFor(snap *app.Snapshot, urlPath string) (site.Route, bool) {
	p := urlPath
	if !strings.HasSuffix(p, "/") && !strings.Contains(p[strings.LastIndex(p, "/")+1:], ".") {
		p += "/"
	}
	if r, ok := snap.Lookup(p); ok {
		return r, true
	}
	if s.cfg.Build.IncludeDraft && strings.HasPrefix(p, "/blog/") {
		slug := strings.Trim(strings.TrimPrefix(p, "/blog/"), "/")
		if slug != "" {
			return site.Route{Kind: site.RoutePost, Slug: slug}, true
		}
	}
	return site.Route{}, false
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot()
	if snap == nil {
		http.Error(w, "content not loaded", http.StatusServiceUnavailable)
		return
	}
	route, ok := s.routeFor(snap, r.URL.Path)
	if !ok {
		s.handleNotFound(w, r, "none")
		return
	}

	data, err := s.site.Render(r.Context(), snap, route)
	switch {
	case errors.Is(err, domainerr.ErrNotFound):
		s.handleNotFound(w, r, string(route.Kind))
		return
	case err != nil:
		s.log.Error("render failed", "route", route.String(), "error", err)
		s.count(route.Kind, http.StatusInternalServerError)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	if route.Kind == site.RoutePostsJSON {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	} else {
		writeHTML(w, data)
	}
	s.count(route.Kind, http.StatusOK)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request, kind string) {
	s.count(site.RouteKind(kind), http.StatusNotFound)
	htmlBytes, err := s.site.RenderNotFound(r.Context(), r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(htmlBytes)
}

func (s *Server) count(kind site.RouteKind, code int) {
	if s.metrics == nil {
		return
	}
	s.metrics.RequestsTotal.WithLabelValues(string(kind), strconv.Itoa(code)).Inc()
}

func writeHTML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}
