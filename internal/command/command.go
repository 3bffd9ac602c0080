// Package command provides the command-execution abstraction the
// administrative actions run through, so tests can substitute a fake runner.
package command

import (
	"context"
	"io"
	"time"
)

// FailureKind classifies why a command failed to execute.
type FailureKind int

const (
	FailureNone        FailureKind = iota // no failure (ExitCode == 0)
	FailureTimeout                        // killed by timeout
	FailurePermission                     // access denied / permission denied
	FailureCommandErr                     // command returned non-zero exit code
	FailureNotFound                       // binary not found
	FailureUnknown                        // unclassified error
)

// String returns a short human-readable label for the failure kind.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureTimeout:
		return "timeout"
	case FailurePermission:
		return "permission_denied"
	case FailureCommandErr:
		return "command_error"
	case FailureNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Spec describes a single external command invocation.
type Spec struct {
	// Name is the binary to invoke.
	Name string
	// Args are the command arguments.
	Args []string
	// Timeout is the maximum execution time before the process is killed.
	// Zero means no timeout beyond the caller's context.
	Timeout time.Duration
	// Stdin is an optional input stream.
	Stdin io.Reader
}

// Result holds the output of a single command execution.
type Result struct {
	// Stdout is the raw stdout output.
	Stdout []byte
	// Stderr is the raw stderr output.
	Stderr []byte
	// ExitCode is the process exit code (-1 if the process never ran or was killed).
	ExitCode int
	// Duration is the actual execution time.
	Duration time.Duration
	// Err is non-nil if the command failed to run or exited non-zero.
	Err error
	// TimedOut is true if the command was killed due to timeout.
	TimedOut bool
	// FailureKind classifies the reason for failure.
	FailureKind FailureKind
}

// Ok reports whether the command ran and exited zero.
func (r Result) Ok() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Runner executes external commands.
type Runner interface {
	Run(ctx context.Context, spec Spec) Result
}
