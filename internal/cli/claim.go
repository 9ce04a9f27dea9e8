package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/babyregalo/internal/app"
	"github.com/five82/babyregalo/internal/registry"
	"github.com/five82/babyregalo/internal/share"
)

func newClaimCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "claim <gift> <guest name...>",
		Short: "Reserve a gift for a guest",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			guest := strings.TrimSpace(strings.Join(args[1:], " "))
			if guest == "" {
				return errors.New("guest name is empty")
			}
			return a.withEnv(cmd, func(env *app.Env) error {
				gift, err := findGift(env.Session.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if gift.IsClaimed {
					fmt.Fprintf(cmd.ErrOrStderr(), "%q was reserved by %s; reassigning\n", gift.Name, gift.ClaimedBy)
				}
				snap, err := apply(cmd, env, func(s registry.Snapshot) registry.Snapshot {
					return s.Claim(gift.ID, guest)
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s reservó %q\n", guest, gift.Name)
				if phone := snap.Settings.HostPhone; phone != "" {
					fmt.Fprintln(cmd.OutOrStdout(), share.WhatsAppURL(phone, guest, gift.Name))
				}
				return nil
			})
		},
	}
}

func newReleaseCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "release <gift>",
		Short: "Clear the reservation on a gift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(env *app.Env) error {
				gift, err := findGift(env.Session.Snapshot(), args[0])
				if err != nil {
					return err
				}
				if _, err := apply(cmd, env, func(s registry.Snapshot) registry.Snapshot {
					return s.Release(gift.ID)
				}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%q vuelve a estar libre\n", gift.Name)
				return nil
			})
		},
	}
}

func newNotifyCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notify <gift>",
		Short: "Print the WhatsApp link announcing a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(env *app.Env) error {
				snap := env.Session.Snapshot()
				gift, err := findGift(snap, args[0])
				if err != nil {
					return err
				}
				if !gift.IsClaimed {
					return fmt.Errorf("%q has not been reserved", gift.Name)
				}
				fmt.Fprintln(cmd.OutOrStdout(), share.WhatsAppURL(snap.Settings.HostPhone, gift.ClaimedBy, gift.Name))
				return nil
			})
		},
	}
}
