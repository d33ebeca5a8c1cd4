// Package loop provides the main game loop and state management.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop/config"
)

// Frontend is the terminal the game is played on.
type Frontend struct {
	Input   input.Source
	Surface draw.Surface
	Size    draw.TermSizeFunc
	// Resized optionally reports a resize the size poll may not see yet.
	Resized func() bool
}

// Options configures a game run.
type Options struct {
	Store  Store
	Audio  audio.Player
	Logger *log.Logger

	// IdleTimeout disconnects a player who pressed nothing for this long,
	// after warning them from IdleWarning on. Zero disables both.
	IdleWarning time.Duration
	IdleTimeout time.Duration

	// Shutdown, when closed, shows a shutdown notice and ends the run after
	// config.ShutdownDisplaySeconds.
	Shutdown <-chan struct{}
}

// notice is a message box drawn over the game.
type notice int

const (
	noticeNone notice = iota
	noticeIdle
	noticeShutdown
)

// screenKey identifies what is on screen; a change triggers a full repaint.
type screenKey struct {
	state  GameState
	phase  Phase
	notice notice
}

// Run starts the main game loop with the standard Input → Update → Draw cycle.
// It returns when the player quits, the input closes or ctx is cancelled.
func Run(ctx context.Context, fe Frontend, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sizeFunc := fe.Size
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}

	game := NewGame(opts.Store, opts.Audio, logger)
	tracker := input.NewTracker()

	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	renderWidth, renderHeight, offsetCol, offsetRow := draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.WorldWidth, config.WorldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	fe.Surface.SetOffset(offsetCol, offsetRow)
	fe.Surface.Clear()

	lastTime := time.Now()
	lastInput := lastTime
	var shutdownAt time.Time
	var prev screenKey
	first := true

	for {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart
		if dt > config.MaxDelta {
			dt = config.MaxDelta
		}

		// ===== INPUT PHASE =====
		keys, ok := fe.Input.Poll()
		if !ok {
			logger.Debug("input closed")
			return nil
		}
		if len(keys) > 0 {
			lastInput = frameStart
		}
		in := tracker.Frame(keys, frameStart, game.Bindings())
		if in.Quit {
			return nil
		}

		current := noticeNone
		if shutdownAt.IsZero() && isClosed(opts.Shutdown) {
			shutdownAt = frameStart
		}
		idle := frameStart.Sub(lastInput)
		switch {
		case !shutdownAt.IsZero():
			current = noticeShutdown
			if frameStart.Sub(shutdownAt).Seconds() >= config.ShutdownDisplaySeconds || containsKey(keys, "q") {
				return nil
			}
		case opts.IdleTimeout > 0 && idle >= opts.IdleTimeout:
			logger.Info("disconnecting idle player", "idle", idle.Round(time.Second))
			return nil
		case opts.IdleWarning > 0 && idle >= opts.IdleWarning:
			current = noticeIdle
		}

		// ===== UPDATE PHASE =====
		if current != noticeShutdown {
			before := game.State
			game.Update(dt, in)
			if game.Quit() {
				return nil
			}
			if game.State != before {
				tracker.Reset()
			}
		}

		// ===== DRAW PHASE =====
		resized := fe.Resized != nil && fe.Resized()
		if termWidth, termHeight, err := sizeFunc(); err == nil {
			renderWidth, renderHeight, offsetCol, offsetRow = draw.ClampTermSize(termWidth, termHeight, config.MaxTermWidth, config.MaxTermHeight)
			if renderWidth != canvas.TerminalWidth() || renderHeight != canvas.TerminalHeight() ||
				offsetCol != canvas.OffsetCol() || offsetRow != canvas.OffsetRow() {
				resized = true
				canvas.Resize(renderWidth, renderHeight)
				canvas.SetOffset(offsetCol, offsetRow)
				fe.Surface.SetOffset(offsetCol, offsetRow)
			}
		}

		key := screenKey{state: game.State, phase: game.Phase, notice: current}
		if resized || key != prev || first {
			fe.Surface.Clear()
			canvas.ForceRedraw()
			prev = key
			first = false
		}

		game.Draw(canvas, fe.Surface)
		switch current {
		case noticeIdle:
			left := (opts.IdleTimeout - idle).Round(time.Second)
			drawNotice(canvas, fe.Surface, []string{
				"INACTIVITY WARNING",
				"",
				fmt.Sprintf("You will be disconnected in %v.", left),
				"Press any key to continue",
			})
		case noticeShutdown:
			remaining := int(config.ShutdownDisplaySeconds-frameStart.Sub(shutdownAt).Seconds()) + 1
			drawNotice(canvas, fe.Surface, []string{
				"SERVER SHUTTING DOWN",
				"",
				"The server is restarting for maintenance.",
				"Please reconnect in a moment.",
				fmt.Sprintf("Disconnecting in %d seconds...", remaining),
				"Press Q to disconnect now",
			})
		}

		if err := fe.Surface.Flush(); err != nil {
			return fmt.Errorf("flush frame: %w", err)
		}

		// ===== FRAME TIMING =====
		wait := config.FrameTime - time.Since(frameStart)
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(wait):
		}
	}
}

// isClosed reports whether ch has been closed. A nil channel never is.
func isClosed(ch <-chan struct{}) bool {
	if ch == nil {
		return false
	}
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func containsKey(keys []input.Key, k input.Key) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}
