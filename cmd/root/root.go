// Package root contains the root command for the application.
package root

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"finzap/internal/config"
	"finzap/internal/container"
	"finzap/internal/server"
)

// Cmd is the root command: it loads the configuration, wires the
// container and serves the webhook until interrupted.
var Cmd = &cobra.Command{
	Use:   "finzap",
	Short: "A WhatsApp finance tracker bot.",
	Long: `finzap is a conversational finance tracker: it receives free-text
messages through a WhatsApp webhook, classifies the intent, extracts
amount and category, and keeps a per-user running ledger.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
	SilenceUsage: true,
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			c.Logger().WithError(err).Warn("Error closing container")
		}
	}()

	mux := http.NewServeMux()
	c.Webhook().Register(mux)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(cfg.Server.Port, mux, c.Logger()).Run(ctx)
}
