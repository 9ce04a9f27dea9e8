package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/babyregalo/internal/app"
	"github.com/five82/babyregalo/internal/registry"
)

func newSetListCmd(a *App) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "set-list",
		Short: "Replace the gift list (one gift per line, from stdin or --file)",
		Long: `Replace the gift list. Gifts whose name matches an existing gift keep
their id and reservation; new names start unreserved; missing names are
dropped. An empty list is rejected.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readList(cmd, file)
			if err != nil {
				return err
			}
			lines := registry.SplitLines(raw)
			if err := registry.ValidateLines(lines); err != nil {
				return err
			}
			return a.withEnv(cmd, func(env *app.Env) error {
				snap, err := apply(cmd, env, func(s registry.Snapshot) registry.Snapshot {
					return s.ReplaceList(lines, nil)
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d regalos guardados (%d elegidos)\n", len(snap.Gifts), len(snap.Claimed()))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the list from this file instead of stdin")
	return cmd
}

func readList(cmd *cobra.Command, file string) (string, error) {
	if file != "" {
		bytes, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read list: %w", err)
		}
		return string(bytes), nil
	}
	bytes, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read list: %w", err)
	}
	return string(bytes), nil
}

func newSettingsCmd(a *App) *cobra.Command {
	var babyName, phone string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Update the baby name and host WhatsApp number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch registry.SettingsPatch
			if cmd.Flags().Changed("baby-name") {
				patch.BabyName = &babyName
			}
			if cmd.Flags().Changed("phone") {
				patch.HostPhone = &phone
			}
			if patch.BabyName == nil && patch.HostPhone == nil {
				return errors.New("nothing to update; pass --baby-name and/or --phone")
			}
			return a.withEnv(cmd, func(env *app.Env) error {
				snap, err := apply(cmd, env, func(s registry.Snapshot) registry.Snapshot {
					return s.UpdateSettings(patch)
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "bebé: %s\nwhatsapp: %s\n", snap.Settings.BabyName, snap.Settings.HostPhone)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&babyName, "baby-name", "", "Name shown at the top of the registry")
	cmd.Flags().StringVar(&phone, "phone", "", "Host WhatsApp number in international format, digits only")
	return cmd
}
