package app

import (
	"context"
	"fmt"

	"github.com/mwantia/mycontracts/internal/app"
	"github.com/spf13/cobra"

	config "github.com/mwantia/mycontracts/internal/config/client"
)

func NewUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the interactive terminal client",
		Long:  `Start the interactive terminal client with the files, tasks, dashboard, accounts and chat views.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClientConfig()
			if err != nil {
				return fmt.Errorf("failed to load client configuration: %w", err)
			}
			// The terminal belongs to the UI; logs only go to the configured file
			cfg.Log.NoTerminal = true

			a, err := app.NewApp(cfg)
			if err != nil {
				return err
			}

			return a.Run(context.Background())
		},
	}

	return cmd
}
