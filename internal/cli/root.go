// Package cli holds the babyregalo cobra commands. With no subcommand the
// root command starts the TUI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/babyregalo/internal/app"
	"github.com/five82/babyregalo/internal/registry"
	"github.com/five82/babyregalo/internal/share"
)

// App carries the persistent flags shared by every command.
type App struct {
	ConfigPath string
	PrefsPath  string
	Link       string

	Clipboard share.Clipboard
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{Clipboard: share.SystemClipboard{}})
}

func newRootCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "babyregalo",
		Short:         "Baby shower gift registry (TUI + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  babyregalo

  # Open a registry someone shared with you
  babyregalo --link 'https://babyregalo.app/?d=eyJnaWZ0cyI6...'

  # Scriptable commands
  babyregalo show
  printf 'Pañales\nCuna\n' | babyregalo set-list
  babyregalo claim Cuna María
  babyregalo link --copy
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), a.options())
		},
	}

	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", "", "Path to config.toml (default ~/.config/babyregalo/config.toml)")
	cmd.PersistentFlags().StringVar(&a.PrefsPath, "prefs", "", "Path to prefs.toml (default ~/.config/babyregalo/prefs.toml)")
	cmd.PersistentFlags().StringVar(&a.Link, "link", "", "Share link or token to open instead of local storage")

	cmd.AddCommand(newShowCmd(a))
	cmd.AddCommand(newClaimCmd(a))
	cmd.AddCommand(newReleaseCmd(a))
	cmd.AddCommand(newSetListCmd(a))
	cmd.AddCommand(newSettingsCmd(a))
	cmd.AddCommand(newLinkCmd(a))
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newNotifyCmd(a))

	return cmd
}

func (a *App) options() app.Options {
	return app.Options{
		ConfigPath: a.ConfigPath,
		PrefsPath:  a.PrefsPath,
		Link:       a.Link,
	}
}

// withEnv opens the registry for the duration of fn.
func (a *App) withEnv(cmd *cobra.Command, fn func(env *app.Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := app.Open(ctx, a.options())
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()
	return fn(env)
}

// apply runs a mutation and fails if it did not reach storage. The TUI
// tolerates a failed write; a script should hear about it.
func apply(cmd *cobra.Command, env *app.Env, fn func(registry.Snapshot) registry.Snapshot) (registry.Snapshot, error) {
	snap, err := env.Session.Apply(cmd.Context(), fn)
	if err != nil {
		return registry.Snapshot{}, err
	}
	if err := env.Session.LastPersistErr(); err != nil {
		return snap, fmt.Errorf("save registry: %w", err)
	}
	return snap, nil
}

var errNoGift = errors.New("no such gift")

// findGift resolves a gift by id, or by name when exactly one gift carries
// it (case-insensitive).
func findGift(s registry.Snapshot, ref string) (registry.Gift, error) {
	ref = strings.TrimSpace(ref)
	if g, ok := s.Find(ref); ok {
		return g, nil
	}
	var found []registry.Gift
	for _, g := range s.Gifts {
		if strings.EqualFold(g.Name, ref) {
			found = append(found, g)
		}
	}
	switch len(found) {
	case 0:
		return registry.Gift{}, fmt.Errorf("%w: %q", errNoGift, ref)
	case 1:
		return found[0], nil
	default:
		return registry.Gift{}, fmt.Errorf("%q matches %d gifts; use the id", ref, len(found))
	}
}
