// cleanup.go implements the "cutrelease cleanup" command.
//
// cleanup deletes a local release/<version> branch once it is no longer
// needed, typically after a pre-release was superseded. The branch that is
// currently checked out is never deleted. Remote branches are left alone.
//
// By default, the command prompts for confirmation. The --force flag skips
// the confirmation prompt.

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/cutrelease/internal/branch"
	"github.com/mmr-tortoise/cutrelease/internal/model"
	"github.com/mmr-tortoise/cutrelease/internal/prompt"
	"github.com/mmr-tortoise/cutrelease/internal/version"
)

// cleanupFlags holds the flag values for the cleanup command.
type cleanupFlags struct {
	// force skips the interactive confirmation prompt when true.
	force bool
}

// NewCleanupCommand creates the "cleanup" cobra command.
func NewCleanupCommand() *cobra.Command {
	flags := &cleanupFlags{}

	cmd := &cobra.Command{
		Use:   "cleanup <version>",
		Short: "Delete a local release branch",
		Long: `Delete the local release/<version> branch.

Unless --force is specified, the command prompts for confirmation.

Examples:
  cutrelease cleanup 1.2.0b1
  cutrelease cleanup --force v1.2.0b1`,

		// Exactly one positional argument (the version) is required.
		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCleanup(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Delete without confirmation")

	return cmd
}

func runCleanup(cmd *cobra.Command, arg string, flags *cleanupFlags) error {
	v, err := parseVersionArg(arg)
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

	if !flags.force {
		p := prompt.New(os.Stdin, promptOutput())
		confirmed, err := p.Confirm(ctx, fmt.Sprintf("Delete local branch %s?", branch.ReleaseName(v)))
		if errors.Is(err, context.Canceled) {
			return model.WrapCLIError(model.ExitUserCancelled, "interrupted", err)
		}
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", err)
		}
		if !confirmed {
			return model.WrapCLIError(model.ExitUserCancelled, "operation cancelled by user", model.ErrAbortedByOperator)
		}
	}

	name, err := ws.orchestrator(false).Cleanup(ctx, v)
	if err != nil {
		return err
	}

	printCleanupResult(cmd.OutOrStdout(), name)
	return nil
}

// parseVersionArg accepts a version with or without the tag prefix.
func parseVersionArg(arg string) (version.Version, error) {
	return version.Parse(strings.TrimPrefix(arg, version.TagPrefix))
}

// printCleanupResult outputs the cleanup result in text or JSON format.
func printCleanupResult(w io.Writer, name string) {
	if IsJSONOutput() {
		result := map[string]interface{}{
			"branch": name,
			"action": "deleted",
		}
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "Deleted branch %s\n", name)
}
