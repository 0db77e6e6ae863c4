package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/danmuck/mcwire/internal/config"
	"github.com/danmuck/mcwire/internal/logging"
	"github.com/danmuck/mcwire/internal/observability"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

type cli struct {
	configPath string
	metrics    bool
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{cfg: config.Default()}

	rootCmd := &cobra.Command{
		Use:   "mcwire",
		Short: "Inspect and build Minecraft handshake, status and login packets",
		Long: `mcwire encodes and decodes the pre-play packets of the Minecraft Java
protocol (handshake, status and login) and checks hosts against the
session server deny-list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !c.metrics {
				return nil
			}
			return observability.WriteText(cmd.ErrOrStderr())
		},
	}
	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file")
	rootCmd.PersistentFlags().BoolVar(&c.metrics, "metrics", false, "print collected metrics to stderr on success")

	rootCmd.AddCommand(
		catalogCmd(),
		decodeCmd(c),
		handshakeCmd(c),
		loginStartCmd(c),
		blockedCmd(c),
		configCmd(),
		versionCmd(),
	)
	return rootCmd
}

func (c *cli) load() error {
	if c.configPath != "" {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	logging.ConfigureRuntime(c.cfg.LogLevel)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
