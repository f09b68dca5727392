package cli

import (
	"github.com/spf13/cobra"

	"github.com/yigit/sharesuki/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API and the background notification workers.

Pending migrations are applied on startup. On SIGINT or SIGTERM the server
stops accepting requests and finishes queued notifications before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.NewServer(cmd.Context(), rootOpts.ConfigPath)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
}
