// Package model defines the shared types for the cutrelease CLI.
//
// This package holds the release outcome states, the process exit codes
// (ExitCode), the sentinel error kinds raised by the release workflow, and
// the CLIError type that carries an exit code up to the command layer.
//
// Nothing in here persists. A release run keeps its state in memory and
// only the manifest file and the git repository outlive the process.
package model
