// Package model defines the shared types for the cutrelease CLI.
//
// The error kinds below are the fatal preconditions of a release run.
// Packages never return them bare: they wrap them in a CLIError carrying the
// matching exit code, so the command layer can map any failure to a process
// exit status while callers still match kinds with errors.Is.
package model

import (
	"errors"
	"fmt"
)

// Outcome is the terminal state of a release run.
//
//	Pending → Completed
//	Pending → AbortedByOperator (either confirmation gate declined)
//	Pending → Failed (precondition or git failure)
type Outcome string

const (
	// OutcomePending is the state of a session that has not terminated yet.
	OutcomePending Outcome = "pending"

	// OutcomeCompleted means every applicable step ran.
	OutcomeCompleted Outcome = "completed"

	// OutcomeAborted means the operator declined a confirmation gate.
	// Local commits, branches and tags created before the gate remain.
	OutcomeAborted Outcome = "aborted"

	// OutcomeFailed means a precondition or a git operation stopped the run.
	OutcomeFailed Outcome = "failed"
)

// String returns the string representation of Outcome.
func (o Outcome) String() string {
	return string(o)
}

// Sentinel error kinds. Match them with errors.Is.
var (
	// ErrInvalidVersionFormat is returned for a string that is not
	// MAJOR.MINOR.PATCH[bN].
	ErrInvalidVersionFormat = errors.New("invalid version format")

	// ErrNoPriorVersion is returned when there is neither a release tag nor
	// an in-flight release version to bump from.
	ErrNoPriorVersion = errors.New("no prior version")

	// ErrUnsupportedBranch is returned when a release is started from a
	// branch that is neither the development branch nor a release branch.
	ErrUnsupportedBranch = errors.New("unsupported branch")

	// ErrDirtyWorkarea is returned when the working tree has uncommitted changes.
	ErrDirtyWorkarea = errors.New("dirty workarea")

	// ErrAmbiguousComponentDirectory is returned when the manifest root does
	// not contain exactly one component directory.
	ErrAmbiguousComponentDirectory = errors.New("ambiguous component directory")

	// ErrMalformedReleaseBranchName is returned for a "release/" branch whose
	// suffix is not a version.
	ErrMalformedReleaseBranchName = errors.New("malformed release branch name")

	// ErrAbortedByOperator is returned when the operator declines a
	// confirmation gate. It is a deliberate exit path, not a fault.
	ErrAbortedByOperator = errors.New("aborted by operator")
)

// ExitCode defines the process exit codes of the CLI. Scripts can tell an
// operator abort apart from a failed precondition by the code alone.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidVersion indicates a version string could not be parsed.
	ExitInvalidVersion ExitCode = 2

	// ExitNoPriorVersion indicates there is no version to bump from.
	ExitNoPriorVersion ExitCode = 3

	// ExitUnsupportedBranch indicates the run started on the wrong branch.
	ExitUnsupportedBranch ExitCode = 4

	// ExitDirtyWorkarea indicates uncommitted local changes.
	ExitDirtyWorkarea ExitCode = 5

	// ExitManifestError indicates the manifest could not be located, read
	// or written.
	ExitManifestError ExitCode = 6

	// ExitGitError indicates a git command failed.
	ExitGitError ExitCode = 7

	// ExitUserCancelled indicates the operator declined a confirmation prompt
	// or interrupted the run.
	ExitUserCancelled ExitCode = 8
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}

// ExitCodeOf returns the exit code carried by err. A nil error maps to
// ExitSuccess and an error without a CLIError in its chain maps to
// ExitGeneralError.
func ExitCodeOf(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return ExitGeneralError
}
