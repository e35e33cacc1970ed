// Package cli implements the cobra-based CLI commands for cutrelease.
//
// Each subcommand (release, next, cleanup) is defined in its own file within
// this package. This file defines the root command that serves as the parent
// for all subcommands and handles global flags.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/cutrelease/internal/logs"
	"github.com/mmr-tortoise/cutrelease/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// Prompts move to stderr in that mode so stdout carries only the result.
	jsonOutput bool

	// verbose forces DEBUG logging.
	verbose bool

	// logLevel is the --log-level value. Empty means $CUTRELEASE_LOG_LEVEL,
	// then INFO.
	logLevel string

	// configPath overrides the .cutrelease.yaml lookup at the repository root.
	configPath string
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action; it only provides
// help text and global flags. Actual functionality is provided by
// subcommands (release, next, cleanup).
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cutrelease",
		Short: "Cut semantic-version releases of a git-tracked component",
		Long: `cutrelease computes the next version of a component from its release tags,
records it in the component's manifest.json and drives git through the
release: branch, commit, merge into trunk, tag and push.

Releases start from the development branch or from an existing
release/<version> branch. Pre-releases (1.2.0b1) are never merged into trunk.`,

		// Errors are printed by Execute, in text or JSON.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logs.Init(os.Stderr, logLevel, verbose); err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "invalid --log-level", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (default INFO)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default <repo>/.cutrelease.yaml)")

	rootCmd.AddCommand(NewReleaseCommand())
	rootCmd.AddCommand(NewNextCommand())
	rootCmd.AddCommand(NewCleanupCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// The first SIGINT or SIGTERM cancels the command context: a prompt that is
// waiting returns and the run checks out its original branch before
// exiting. Signal handling is then reset, so a second Ctrl-C kills the
// process. CLIError values carry their own exit codes; other errors exit
// with 1.
func Execute(rootCmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctx.Done()
		stop()
	}()

	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}

	message, underlying := err.Error(), error(nil)
	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		message, underlying = cliErr.Message, cliErr.Err
	}
	printError(os.Stderr, message, underlying)
	os.Exit(int(model.ExitCodeOf(err)))
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// promptOutput is where interactive prompts are written.
func promptOutput() io.Writer {
	if jsonOutput {
		return os.Stderr
	}
	return os.Stdout
}
