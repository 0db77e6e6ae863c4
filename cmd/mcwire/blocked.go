package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/danmuck/mcwire/internal/blocklist"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func blockedCmd(c *cli) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "blocked <address...>",
		Short: "Check server addresses against the session server deny-list",
		Long: `Check each address (IPv4 or domain) against the deny-list.

The list is fetched from blocklist_url unless --file names a local copy
with one SHA-1 hash per line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.loadBlocklist(cmd.Context(), file)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, addr := range args {
				verdict := "allowed"
				if list.IsBlocked(addr) {
					verdict = "blocked"
				}
				fmt.Fprintf(tw, "%s\t%s\n", addr, verdict)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read hashes from a local file instead of fetching")

	return cmd
}

func (c *cli) loadBlocklist(ctx context.Context, file string) (*blocklist.List, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return blocklist.Parse(f)
	}
	log.Info().Str("url", c.cfg.BlocklistURL).Msg("fetching blocklist")
	return blocklist.NewFetcher(c.cfg.FetcherConfig()).Load(ctx)
}
