package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	lconfig "github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/store"
	"github.com/tomz197/asteroids-arcade/internal/webterm"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"

	shutdownGrace = 15 * time.Second
)

//go:embed index.html
var htmlPage string

// arcade runs browser games; like the SSH host it shares only the high score.
type arcade struct {
	logger   *log.Logger
	scores   *store.File
	shutdown chan struct{}

	mu       sync.Mutex // orders join against drain
	closing  bool
	sessions sync.WaitGroup
}

func main() {
	logger := config.NewLogger(os.Stderr, "web")

	addr := net.JoinHostPort(config.GetEnv("WEB_HOST", defaultHost), config.GetEnv("WEB_PORT", defaultPort))
	playInBrowser := config.GetEnvBool("WEB_PLAY", true)
	page := renderPage(config.GetEnv("SSH_DISPLAY_HOST", "your-server.com"), playInBrowser)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	a := &arcade{logger: logger, shutdown: make(chan struct{})}
	if playInBrowser {
		a.scores = store.NewFile(config.DataDir(), logger)
		mux.Handle("/play", &webterm.Handler{Logger: logger, Play: a.play})
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           requestLog(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting web server", "url", "http://"+addr, "play", playInBrowser)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	a.drain(shutdownGrace)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// play runs one game in a browser terminal.
func (a *arcade) play(ctx context.Context, c *webterm.Conn) error {
	if !a.join() {
		_, err := fmt.Fprint(c, "Server is shutting down. Please try again later.\r\n")
		return err
	}
	defer a.sessions.Done()

	draw.HideCursor(c)
	fe := loop.Frontend{
		Input:   input.StartStream(c),
		Surface: draw.NewChunkWriter(c, 0, 0),
		Size:    c.Size,
	}
	opts := loop.Options{
		Store:       store.NewSessionStore(a.scores),
		Audio:       audio.Nop{},
		Logger:      a.logger,
		IdleWarning: lconfig.InactivityWarnUser,
		IdleTimeout: lconfig.InactivityDisconnectUser,
		Shutdown:    a.shutdown,
	}
	return loop.Run(ctx, fe, opts)
}

// join registers a new session unless the server is draining.
func (a *arcade) join() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closing {
		return false
	}
	a.sessions.Add(1)
	return true
}

// drain shows running games the shutdown notice and waits at most grace
// for them to end.
func (a *arcade) drain(grace time.Duration) {
	a.mu.Lock()
	if !a.closing {
		a.closing = true
		close(a.shutdown)
	}
	a.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		a.sessions.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(grace):
		a.logger.Warn("browser sessions still running after grace period", "grace", grace)
	}
}

// renderPage fills the SSH host into the landing page and drops the browser
// terminal when in-browser play is off.
func renderPage(sshHost string, playInBrowser bool) string {
	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	if playInBrowser {
		return page
	}
	const startMark, endMark = "<!-- play -->", "<!-- /play -->"
	for {
		start := strings.Index(page, startMark)
		end := strings.Index(page, endMark)
		if start < 0 || end < start {
			return page
		}
		page = page[:start] + page[end+len(endMark):]
	}
}

func requestLog(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}
