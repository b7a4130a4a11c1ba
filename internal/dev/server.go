package dev

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/djboot-dev/djboot/internal/config"
	"github.com/djboot-dev/djboot/internal/errors"
	"github.com/djboot-dev/djboot/internal/python"
)

// Server is the development proxy. It fronts the Django runserver process,
// injects the hot reload client into HTML responses, restarts Django on file
// changes, and exposes reload WebSocket and metrics endpoints under /_djboot/.
type Server struct {
	cfg     *config.Config
	reload  *ReloadServer
	metrics *Metrics
	runner  *python.Runserver
	watcher *Watcher
	log     *charmlog.Logger
	httpSrv *http.Server
	appURL  *url.URL

	// runCtx is the context Run was called with. Django restarts use it so
	// the restarted process lives as long as the server, not as long as the
	// handler that triggered the restart.
	runCtx context.Context
}

// NewServer creates a development server for the project described by cfg.
func NewServer(cfg *config.Config) (*Server, error) {
	appURL, err := url.Parse(fmt.Sprintf("http://127.0.0.1:%d", cfg.AppPort()))
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		reload: NewReloadServer(),
		runner: python.NewRunserver(cfg.Dir()),
		appURL: appURL,
		log: charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			Prefix:          "djboot",
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
		}),
		runCtx: context.Background(),
	}
	s.metrics = NewMetrics(s.reload.ClientCount)
	return s, nil
}

// Run starts the Django server and the proxy, then blocks until ctx is
// cancelled or the proxy fails.
func (s *Server) Run(ctx context.Context) error {
	if _, err := os.Stat(s.projectPath("manage.py")); err != nil {
		return errors.New("E091").WithPath(s.cfg.Dir())
	}
	s.runCtx = ctx

	if err := s.runner.Start(ctx, "127.0.0.1", s.cfg.AppPort()); err != nil {
		return err
	}
	defer s.runner.Stop()

	appExit := make(chan error, 1)
	go s.monitorApp(ctx, appExit)

	s.waitForApp(ctx)

	if s.cfg.HotReload() {
		w, err := NewWatcher(s.cfg.Dir(), s.cfg.Dev.Ignore, s.onChange)
		if err != nil {
			s.log.Warn("File watching unavailable", "err", err)
		} else {
			s.watcher = w
			defer w.Close()
		}
	}

	s.httpSrv = &http.Server{
		Addr:    s.cfg.DevAddress(),
		Handler: s.router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Dev server running", "url", s.cfg.DevURL())
		err := s.httpSrv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- errors.New("E090").WithDetail(err.Error()).Wrap(err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutCtx)
		s.reload.Close()
		return nil
	case err := <-appExit:
		s.log.Error("Django server exited", "err", err)
		s.reload.NotifyError("The Django server exited. Check the terminal for details.")
		return err
	case err := <-errCh:
		return err
	}
}

// monitorApp reports when Django exits for good. A dependency restart swaps
// the process and bumps the generation; only a same-generation exit means the
// server died on its own.
func (s *Server) monitorApp(ctx context.Context, exit chan<- error) {
	for {
		gen := s.runner.Generation()
		err := s.runner.Wait()
		if ctx.Err() != nil {
			return
		}
		if s.runner.Generation() != gen {
			continue
		}
		if err == nil {
			err = errors.New("E074").WithPath(s.cfg.Dir()).WithDetail("The Django server exited unexpectedly")
		}
		exit <- err
		return
	}
}

func (s *Server) projectPath(parts ...string) string {
	return filepath.Join(append([]string{s.cfg.Dir()}, parts...)...)
}

// waitForApp polls the Django port so the first proxied request doesn't race
// the runserver startup.
func (s *Server) waitForApp(ctx context.Context) {
	addr := fmt.Sprintf("127.0.0.1:%d", s.cfg.AppPort())
	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return
		}
		conn, err := net.DialTimeout("tcp", addr, 250*time.Millisecond)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(250 * time.Millisecond)
	}
	s.log.Warn("Django server did not become ready in time", "addr", addr)
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Get("/_djboot/reload", s.reload.HandleWebSocket)
	r.Handle("/_djboot/metrics", s.metrics.Handler())

	for prefix, target := range s.cfg.Dev.Proxy {
		targetURL, err := url.Parse(target)
		if err != nil {
			s.log.Warn("Skipping invalid proxy rule", "prefix", prefix, "target", target)
			continue
		}
		r.Handle(prefix+"/*", httputil.NewSingleHostReverseProxy(targetURL))
	}

	r.NotFound(s.proxyToApp())
	return r
}

// proxyToApp forwards everything else to the Django server and injects the
// reload client into HTML responses.
func (s *Server) proxyToApp() http.HandlerFunc {
	proxy := httputil.NewSingleHostReverseProxy(s.appURL)
	proxy.ModifyResponse = s.injectReloadScript
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		s.log.Error("Proxy error", "path", r.URL.Path, "err", err)
		http.Error(w, "djboot: Django server unavailable", http.StatusBadGateway)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		proxy.ServeHTTP(rec, r)
		s.metrics.ObserveProxied(r.Method, rec.status, time.Since(start))
	}
}

// injectReloadScript appends the reload client before </body> in HTML
// responses. Gzip-encoded bodies are transparently recoded.
func (s *Server) injectReloadScript(resp *http.Response) error {
	if !s.cfg.HotReload() {
		return nil
	}
	if !strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return nil
	}

	gzipped := resp.Header.Get("Content-Encoding") == "gzip"
	var reader io.Reader = resp.Body
	if gzipped {
		gr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil // leave the response untouched
		}
		defer gr.Close()
		reader = gr
	}

	body, err := io.ReadAll(reader)
	resp.Body.Close()
	if err != nil {
		return err
	}

	injected := injectBeforeBodyClose(body, []byte(DevClientScript))

	if gzipped {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		gw.Write(injected)
		gw.Close()
		injected = buf.Bytes()
	}

	resp.Body = io.NopCloser(bytes.NewReader(injected))
	resp.ContentLength = int64(len(injected))
	resp.Header.Set("Content-Length", strconv.Itoa(len(injected)))
	return nil
}

// injectBeforeBodyClose inserts snippet before the closing </body> tag, or
// appends it when the page has none.
func injectBeforeBodyClose(body, snippet []byte) []byte {
	idx := bytes.LastIndex(body, []byte("</body>"))
	if idx < 0 {
		return append(body, snippet...)
	}
	out := make([]byte, 0, len(body)+len(snippet))
	out = append(out, body[:idx]...)
	out = append(out, snippet...)
	out = append(out, body[idx:]...)
	return out
}

// onChange notifies browsers of a change. Django's own autoreloader handles
// code edits; dependency changes need a full restart of the server process.
func (s *Server) onChange(file string) {
	rel := file
	if r, err := filepath.Rel(s.cfg.Dir(), file); err == nil {
		rel = filepath.ToSlash(r)
	}
	s.log.Info("File changed", "file", rel)

	if strings.HasSuffix(file, "pyproject.toml") || strings.HasSuffix(file, "poetry.lock") {
		s.log.Info("Dependencies changed, restarting Django")
		if err := s.runner.Start(s.runCtx, "127.0.0.1", s.cfg.AppPort()); err != nil {
			s.reload.NotifyError(err.Error())
			return
		}
		s.waitForApp(s.runCtx)
	}

	s.metrics.ObserveReload()
	s.reload.NotifyReload(rel)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
