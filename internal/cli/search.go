package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yigit/sharesuki/internal/app/repositories"
)

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "List records, optionally filtered by a substring",
		Long: `List stored records newest first.

With a query, only records whose name, wanted skill, offered skill or class
contains the query (case-sensitive) are listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(rootOpts, strings.Join(args, ""), cmd)
		},
	}
}

func runSearch(opts *RootOptions, query string, cmd *cobra.Command) (err error) {
	deps, err := openApp(cmd.Context(), opts, cmd)
	if err != nil {
		return err
	}
	defer closeApp(cmd, deps, &err)

	records, err := deps.SkillService.Search(cmd.Context(), repositories.SkillFilter{Query: query})
	if err != nil {
		return err
	}
	return newPrinter(opts, cmd).records(records)
}
