// Package cmd provides the neotrack-cli commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"neotrack/internal/cli"
	"neotrack/internal/config"
	applog "neotrack/internal/log"
	"neotrack/internal/services"
)

// opener builds the ledger service and a cleanup for it.
type opener func(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*services.LedgerService, func() error, error)

type app struct {
	envFile string
	debug   bool

	open    opener
	svc     *services.LedgerService
	cleanup func() error
}

// Execute runs the root command against the configured ledger.
func Execute() error {
	a := &app{open: cli.NewLedgerService}
	// PersistentPostRunE is skipped when a command fails
	defer a.close()
	return newRootCmd(a).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "neotrack-cli",
		Short: "Track income and expenses from the terminal",
		Long: `neotrack-cli reads and edits the same ledger the neotrack server uses.

Example:
  neotrack-cli add "Coffee" 3,50 --category Food
  neotrack-cli add "Salary" 2500 --type income
  neotrack-cli list --type expense
  neotrack-cli summary`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env", "", "env file to load (default is .env)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newAddCmd(a),
		newRmCmd(a),
		newListCmd(a),
		newSummaryCmd(a),
		newBreakdownCmd(a),
		newBudgetCmd(a),
		newCategoriesCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	} else {
		cli.LoadEnvFile()
	}

	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentCLI, Output: os.Stderr})

	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	svc, cleanup, err := a.open(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	a.svc, a.cleanup = svc, cleanup
	return nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}

var errNoService = errors.New("ledger is not open")

func (a *app) service() (*services.LedgerService, error) {
	if a.svc == nil {
		return nil, errNoService
	}
	return a.svc, nil
}
