package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/sharesuki/internal/bootstrap"
)

// MigrateResult is the outcome of the migrate command.
type MigrateResult struct {
	Pending []string `json:"pending"`
	Applied int      `json:"applied"`
	DryRun  bool     `json:"dryRun"`
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, dryRun, cmd)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list pending migrations without applying them")
	return cmd
}

func runMigrate(opts *RootOptions, dryRun bool, cmd *cobra.Command) error {
	cfg, lgr, err := loadConfig(opts, cmd)
	if err != nil {
		return err
	}

	store, err := bootstrap.OpenStore(cfg, lgr)
	if err != nil {
		return err
	}
	defer store.Close()

	pending, err := store.Pending(cmd.Context())
	if err != nil {
		return err
	}

	result := MigrateResult{Pending: pending, DryRun: dryRun}
	if !dryRun {
		if result.Applied, err = store.Migrate(cmd.Context()); err != nil {
			return err
		}
	}

	return newPrinter(opts, cmd).migrate(result)
}
