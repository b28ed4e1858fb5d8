package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/assetdesk/assetdesk/internal/interfaces/cli/events"
	"github.com/assetdesk/assetdesk/internal/interfaces/cli/migrate"
	"github.com/assetdesk/assetdesk/internal/interfaces/cli/seed"
	"github.com/assetdesk/assetdesk/internal/interfaces/cli/server"
	"github.com/assetdesk/assetdesk/internal/interfaces/cli/token"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "assetdesk",
		Short:        "assetdesk - IT asset attachment and retirement ledger",
		Long:         `assetdesk tracks which parts, software licences and users are attached to devices, enforces licence seat limits and retires assets directly or through an approval flow.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		token.NewCommand(),
		events.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
