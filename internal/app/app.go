package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Sriram-612/INTALKS-AI-sub001/internal/config"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/intalks"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/prefs"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/state"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/stream"
	"github.com/Sriram-612/INTALKS-AI-sub001/internal/timeutil"
)

// Options configure the dashboard application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/intalksdash/prefs.toml
	TickEvery  int    // seconds; zero uses the configured value
}

// UI is the terminal frontend. It renders the engine's ViewModels and
// feeds user input back as Commands. Keeping it behind an interface keeps
// the engine free of rendering dependencies.
type UI interface {
	Run(ctx context.Context, engine *Engine, userPrefs prefs.Prefs, prefsPath string) error
}

// Run boots the dashboard until the context is cancelled or the frontend
// exits.
func Run(ctx context.Context, opts Options, frontend UI) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	logger, closeLog := newLogger(cfg.LogPath)
	defer closeLog()

	client, err := intalks.NewClient(cfg.APIBase)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	tick := cfg.TickSeconds
	if opts.TickEvery > 0 {
		tick = opts.TickEvery
	}

	store := &state.Store{}
	engine := NewEngine(EngineOptions{
		Backend:   client,
		Store:     store,
		Logger:    logger,
		Location:  timeutil.LoadZone(cfg.Timezone),
		ExportDir: cfg.ExportDir,
		TickEvery: time.Duration(tick) * time.Second,
		PageSize:  userPrefs.PageSize,
	})

	sc := stream.New(stream.Options{
		URL:           cfg.SocketURL,
		OnStateChange: engine.HandleStreamState,
		Logger:        logger,
	})
	for _, name := range []string{
		stream.EventCallStatusUpdate,
		stream.EventUploadProgress,
		stream.EventUploadComplete,
		stream.EventBulkOperationUpdate,
		stream.EventDataUpdate,
	} {
		sc.On(name, engine.HandleStreamEvent)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go engine.Run(ctx)
	go sc.Run(ctx)

	return frontend.Run(ctx, engine, userPrefs, opts.PrefsPath)
}

// newLogger opens the JSON log file. The TUI owns the terminal, so logs
// never go to stderr; on failure logging is discarded rather than fatal.
func newLogger(path string) (*slog.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}
	}
	logger := slog.New(slog.NewJSONHandler(file, nil))
	return logger, func() { _ = file.Close() }
}
