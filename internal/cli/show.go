package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/five82/babyregalo/internal/app"
	"github.com/five82/babyregalo/internal/registry"
)

func newShowCmd(a *App) *cobra.Command {
	var (
		asJSON bool
		filter string
		search string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withEnv(cmd, func(env *app.Env) error {
				snap := env.Session.Snapshot()
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), snap)
				}
				return writeTable(cmd.OutOrStdout(), snap, snap.Visible(registry.ParseFilter(filter), search))
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full snapshot as JSON")
	cmd.Flags().StringVar(&filter, "filter", "all", "Which gifts to list (all|available|claimed)")
	cmd.Flags().StringVar(&search, "search", "", "Only list gifts whose name contains this text")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeTable(w io.Writer, snap registry.Snapshot, gifts []registry.Gift) error {
	claimed := len(snap.Claimed())
	fmt.Fprintf(w, "%s  (%d libres, %d elegidos)\n", snap.Settings.BabyName, len(snap.Gifts)-claimed, claimed)
	if snap.Settings.HostPhone != "" {
		fmt.Fprintf(w, "WhatsApp: %s\n", snap.Settings.HostPhone)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tREGALO\tESTADO\tRESERVADO POR")
	for _, g := range gifts {
		status := "libre"
		if g.IsClaimed {
			status = "elegido"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.Name, status, g.ClaimedBy)
	}
	return tw.Flush()
}
