package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	lconfig "github.com/tomz197/asteroids-arcade/internal/loop/config"
	"github.com/tomz197/asteroids-arcade/internal/store"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	shutdownGrace = 15 * time.Second
)

// host runs one independent game per SSH session. Sessions share only the
// high score file.
type host struct {
	logger   *log.Logger
	scores   *store.File
	shutdown chan struct{}

	mu       sync.Mutex // orders join against drain
	closing  bool
	sessions sync.WaitGroup
}

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")

	addr := net.JoinHostPort(config.GetEnv("SSH_HOST", defaultHost), config.GetEnv("SSH_PORT", defaultPort))
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	dataDir := config.DataDir()
	logger.Info("ssh config", "addr", addr, "hostKey", hostKeyPath, "data", dataDir)

	h := &host{
		logger:   logger,
		scores:   store.NewFile(dataDir, logger),
		shutdown: make(chan struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			h.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down, notifying players")
	h.drain(shutdownGrace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// drain shows every running game the shutdown notice and waits for the
// sessions to end, at most grace.
func (h *host) drain(grace time.Duration) {
	h.mu.Lock()
	if !h.closing {
		h.closing = true
		close(h.shutdown)
	}
	h.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		h.sessions.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		h.logger.Info("all sessions ended")
	case <-time.After(grace):
		h.logger.Warn("sessions still running after grace period", "grace", grace)
	}
}

// join registers a new session unless the server is draining.
func (h *host) join() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closing {
		return false
	}
	h.sessions.Add(1)
	return true
}

// gameMiddleware handles SSH sessions and runs a game for each of them.
func (h *host) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		if !h.join() {
			fmt.Fprintln(sess, "Server is shutting down. Please try again later.")
			return
		}
		defer h.sessions.Done()

		logger := h.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		tracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				tracker.update(win.Width, win.Height)
			}
		}()

		draw.HideCursor(sess)
		fe := loop.Frontend{
			Input:   input.StartStream(sess),
			Surface: draw.NewChunkWriter(sess, 0, 0),
			Size:    tracker.getSize,
		}
		opts := loop.Options{
			Store:       store.NewSessionStore(h.scores),
			Audio:       audio.Nop{},
			Logger:      logger,
			IdleWarning: lconfig.InactivityWarnUser,
			IdleTimeout: lconfig.InactivityDisconnectUser,
			Shutdown:    h.shutdown,
		}
		if err := loop.Run(sess.Context(), fe, opts); err != nil {
			logger.Error("game error", "err", err)
		}
		draw.ClearScreen(sess)
		draw.ShowCursor(sess)

		logger.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
