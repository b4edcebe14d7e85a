package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLeaguesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List leagues the service supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.client.Leagues(cmd.Context())
			if err != nil {
				return fmt.Errorf("list leagues: %w", err)
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tLABEL\tSPORT\tDEFAULT")
			for _, l := range list.Leagues {
				def := ""
				if l.Key == list.Default {
					def = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Key, l.Label, l.Sport, def)
			}
			return w.Flush()
		},
	}
}
