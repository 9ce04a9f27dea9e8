package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/babyregalo/internal/app"
	"github.com/five82/babyregalo/internal/codec"
	"github.com/five82/babyregalo/internal/share"
)

func newLinkCmd(a *App) *cobra.Command {
	var copyLink bool
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Print the share link for the current registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(env *app.Env) error {
				link, err := share.Link(env.Config.ShareBaseURL, env.Session.Snapshot())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), link)
				if !copyLink {
					return nil
				}
				if err := a.Clipboard.WriteAll(link); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "¡Enlace copiado!")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&copyLink, "copy", false, "Also copy the link to the clipboard")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token|link>",
		Short: "Decode a share link or token and print the snapshot as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := share.TokenFrom(args[0])
			if token == "" {
				return fmt.Errorf("no token found in %q", args[0])
			}
			snap, err := codec.Decode(token)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), snap)
		},
	}
}
