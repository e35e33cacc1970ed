// next.go implements the "cutrelease next" command.
//
// next is a dry run of release: it refreshes tags from the remote and
// resolves the next version, branch and tag without changing anything.
// Uncommitted changes are allowed.

package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type nextFlags struct {
	releaseType string
}

// NewNextCommand creates the "next" cobra command.
func NewNextCommand() *cobra.Command {
	flags := &nextFlags{}

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show what the next release would be",
		Long: `Show the version, branch and tag the next release would create.

Examples:
  cutrelease next --type patch
  cutrelease next --type beta --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.releaseType, "type", "t", "", "Release type: major, minor, patch, prerelease")

	return cmd
}

func runNext(cmd *cobra.Command, flags *nextFlags) error {
	intent, err := parseIntentFlag(flags.releaseType)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ws, err := openWorkspace(ctx)
	if err != nil {
		return err
	}

	s, err := ws.orchestrator(false).Plan(ctx, intent)
	if err != nil {
		return err
	}

	printPlan(cmd.OutOrStdout(), s)
	return nil
}
