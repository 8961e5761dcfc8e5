package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"agency_portal_backend/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "stagectl",
		Short: "Maintenance commands for the representing country stage sequencer",
		Long: `stagectl applies database migrations, seeds the stage catalog and
verifies that every stored stage sequence is well formed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.MigrateCmd())
	rootCmd.AddCommand(cli.SeedCatalogCmd())
	rootCmd.AddCommand(cli.VerifyCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
