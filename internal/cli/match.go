package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewMatchCommand creates the match command.
func NewMatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <record-id>",
		Short: "Notify the mutual matches of one record",
		Long: `Run one notification pass for a record in the foreground.

Every record that wants what this record offers and offers what it wants is
emailed together with the record itself. Prints the partners that were reached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid record id %q", args[0])
			}
			return runMatch(rootOpts, id, cmd)
		},
	}
}

func runMatch(opts *RootOptions, id int64, cmd *cobra.Command) (err error) {
	deps, err := openApp(cmd.Context(), opts, cmd)
	if err != nil {
		return err
	}
	defer closeApp(cmd, deps, &err)

	notified, err := deps.NotificationService.NotifyMutualMatches(cmd.Context(), id)
	if err != nil {
		return err
	}
	return newPrinter(opts, cmd).notified(id, notified)
}

// NewMatchAllCommand creates the match-all command.
func NewMatchAllCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match-all",
		Short: "Notify the mutual matches of every record",
		Long: `Run a notification pass for every record that has an email address,
pausing between records as configured by matching.bulk_throttle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatchAll(rootOpts, cmd)
		},
	}
}

func runMatchAll(opts *RootOptions, cmd *cobra.Command) (err error) {
	deps, err := openApp(cmd.Context(), opts, cmd)
	if err != nil {
		return err
	}
	defer closeApp(cmd, deps, &err)

	total, err := deps.NotificationService.NotifyAll(cmd.Context())
	if err != nil {
		return err
	}
	return newPrinter(opts, cmd).total(total)
}
