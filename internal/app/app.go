package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/babyregalo/internal/config"
	"github.com/five82/babyregalo/internal/prefs"
	"github.com/five82/babyregalo/internal/share"
	"github.com/five82/babyregalo/internal/state"
	"github.com/five82/babyregalo/internal/storage"
	"github.com/five82/babyregalo/internal/ui"
)

// Options configure a babyregalo run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/babyregalo/prefs.toml
	Link       string // share link or bare token; empty opens local storage
}

// Env is an opened registry: its configuration, backing storage and a Ready
// session.
type Env struct {
	Config  config.Config
	Session *state.Session
	Load    state.LoadResult
	Storage storage.Storage

	closer io.Closer
}

// Open loads the config and boots a session for opts.
func Open(ctx context.Context, opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return open(ctx, cfg, opts)
}

func open(ctx context.Context, cfg config.Config, opts Options) (*Env, error) {
	store, closer, err := storage.Open(ctx, cfg.Storage, cfg.StoragePath())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}

	token := share.TokenFrom(opts.Link)
	sess, res := state.Boot(ctx, state.Loader{Storage: store}, state.Sink{Storage: store}, token)

	return &Env{
		Config:  cfg,
		Session: sess,
		Load:    res,
		Storage: store,
		closer:  closer,
	}, nil
}

// Close releases the storage backend.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Run boots the babyregalo TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := startLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	env, err := open(ctx, cfg, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	uiOpts := ui.Options{
		Context:   ctx,
		Session:   env.Session,
		Config:    &env.Config,
		Clipboard: share.SystemClipboard{},
		ThemeName: userPrefs.Theme,
		Filter:    userPrefs.Filter,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// startLogging sends the standard logger to path so log lines never land on
// the TUI.
func startLogging(path string) (*os.File, error) {
	if path == "" {
		return nil, errors.New("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "babyregalo")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
