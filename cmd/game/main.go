package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/tomz197/asteroids-arcade/internal/audio"
	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/input"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/store"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logOut, err := config.OpenLogFile(config.GetEnv("ASTEROIDS_LOG_FILE", ""))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logOut.Close()
	logger := config.NewLogger(logOut, "game")

	st := store.NewFile(config.DataDir(), logger)
	player := newPlayer(st.LoadSettings().Volumes(), logger)
	defer player.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{Store: st, Audio: player, Logger: logger}

	frontend := config.GetEnv("GAME_FRONTEND", "ansi")
	logger.Info("starting", "frontend", frontend, "data", st.Dir())
	switch frontend {
	case "ansi":
		err = runANSI(ctx, opts)
	case "tcell":
		err = runTcell(ctx, opts)
	default:
		return fmt.Errorf("unknown GAME_FRONTEND %q (want ansi or tcell)", frontend)
	}
	if err != nil {
		logger.Error("game stopped", "err", err)
	}
	return err
}

// newPlayer opens the sound device, falling back to silence.
func newPlayer(v audio.Volumes, logger *log.Logger) audio.Player {
	if !config.GetEnvBool("ASTEROIDS_AUDIO", true) {
		return audio.Nop{}
	}
	engine, err := audio.NewEngine(v)
	if err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return audio.Nop{}
	}
	return engine
}

func runANSI(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	draw.HideCursor(os.Stdout)
	defer draw.ShowCursor(os.Stdout)
	defer draw.ClearScreen(os.Stdout)

	fe := loop.Frontend{
		Input:   input.StartStream(os.Stdin),
		Surface: draw.NewChunkWriter(os.Stdout, 0, 0),
		Size:    draw.DefaultTermSizeFunc,
	}
	return loop.Run(ctx, fe, opts)
}

func runTcell(ctx context.Context, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	surface := draw.NewTcellSurface(screen)
	source := input.NewTcellSource(screen)
	fe := loop.Frontend{
		Input:   source,
		Surface: surface,
		Size:    surface.Size,
		Resized: source.Resized,
	}
	return loop.Run(ctx, fe, opts)
}
