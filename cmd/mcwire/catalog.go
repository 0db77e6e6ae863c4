package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/danmuck/mcwire/internal/protocol/packet"
	"github.com/spf13/cobra"
)

func catalogCmd() *cobra.Command {
	var stateFlag, dirFlag string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List registered packets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			states := packet.States()
			if stateFlag != "" {
				s, err := packet.ParseState(stateFlag)
				if err != nil {
					return err
				}
				states = []packet.State{s}
			}
			dirs := packet.Directions()
			if dirFlag != "" {
				d, err := packet.ParseDirection(dirFlag)
				if err != nil {
					return err
				}
				dirs = []packet.Direction{d}
			}

			reg := packet.Default()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STATE\tDIRECTION\tID\tPACKET")
			for _, s := range states {
				for _, d := range dirs {
					for _, e := range reg.Entries(s, d) {
						fmt.Fprintf(tw, "%s\t%s\t0x%02x\t%s\n", s, d, e.Key.ID, e.Name)
					}
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&stateFlag, "state", "s", "", "only this state (handshake|status|login)")
	cmd.Flags().StringVarP(&dirFlag, "direction", "d", "", "only this direction (clientbound|serverbound)")

	return cmd
}
