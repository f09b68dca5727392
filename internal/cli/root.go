package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/sharesuki/internal/bootstrap"
	"github.com/yigit/sharesuki/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Format     string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ShareSuki CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sharesuki",
		Short: "ShareSuki - skill exchange matching",
		Long:  "Register what students want to learn and can teach, and email both sides of every mutual match.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", bootstrap.DefaultConfigPath, "path to the YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewMatchCommand(opts))
	cmd.AddCommand(NewMatchAllCommand(opts))

	return cmd
}

// loadConfig reads the config and sends log lines to the command's stderr so
// that stdout carries only command output.
func loadConfig(opts *RootOptions, cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	return bootstrap.LoadConfigAndSetupLogger(opts.ConfigPath, cmd.ErrOrStderr())
}

// openApp loads config, opens and migrates the store and wires the services.
// The caller must Close the returned dependencies.
func openApp(ctx context.Context, opts *RootOptions, cmd *cobra.Command) (*bootstrap.Dependencies, error) {
	cfg, lgr, err := loadConfig(opts, cmd)
	if err != nil {
		return nil, err
	}

	store, err := bootstrap.SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, store, nil, lgr)
	if err != nil {
		store.Close()
		return nil, err
	}
	return deps, nil
}
