// release.go implements the "cutrelease release" command.
//
// The release command runs the whole release: it resolves the next version,
// asks the operator to confirm it, commits the manifest bump on
// release/<version>, merges into trunk (final releases only), tags, asks
// again before pushing, and finally checks out the branch it started from.

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/version"
)

// releaseFlags holds the flag values for the release command.
type releaseFlags struct {
	// releaseType is the --type value; empty shows the interactive menu.
	releaseType string

	// yes answers both confirmations without reading stdin.
	yes bool
}

// NewReleaseCommand creates the "release" cobra command.
func NewReleaseCommand() *cobra.Command {
	flags := &releaseFlags{}

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Cut the next release",
		Long: `Cut the next release from the development branch or a release branch.

The release type is read from --type or chosen from a menu. The next
version is confirmed before anything changes and again before anything
is pushed. Declining either prompt exits with code 8; local commits, tags
and branches created before the second prompt are kept.

Examples:
  cutrelease release
  cutrelease release --type minor
  cutrelease release --type prerelease --yes`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelease(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.releaseType, "type", "t", "", "Release type: major, minor, patch, prerelease")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Answer yes to every confirmation")

	return cmd
}

func runRelease(cmd *cobra.Command, flags *releaseFlags) error {
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

	s, err := ws.orchestrator(flags.yes).Run(ctx, intent)
	if err != nil {
		return err
	}

	printSession(cmd.OutOrStdout(), s)
	return nil
}

// parseIntentFlag converts the --type value. An empty value means the
// operator picks from the menu.
func parseIntentFlag(s string) (version.Intent, error) {
	if s == "" {
		return version.IntentUnset, nil
	}
	intent, err := version.ParseIntent(s)
	if err != nil {
		return version.IntentUnset, model.WrapCLIError(model.ExitGeneralError, "invalid --type", err)
	}
	return intent, nil
}
