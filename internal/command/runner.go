package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// NewExecRunner creates the production Runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command described by spec and classifies any failure.
func (r *ExecRunner) Run(ctx context.Context, spec Spec) Result {
	start := time.Now()
	result := Result{}

	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	if spec.Stdin != nil {
		cmd.Stdin = spec.Stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Duration = time.Since(start)
	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()

	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = -1
		result.Err = fmt.Errorf("timeout after %s", spec.Timeout)
		result.FailureKind = FailureTimeout
		return result
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
		result.Err = fmt.Errorf("exec %s: %w", spec.Name, err)
		classifyFailure(&result)
		return result
	}

	result.ExitCode = 0
	result.FailureKind = FailureNone
	return result
}

// classifyFailure sets FailureKind based on exit code and stderr content.
func classifyFailure(result *Result) {
	if result.TimedOut {
		result.FailureKind = FailureTimeout
		return
	}
	if result.Err == nil {
		result.FailureKind = FailureNone
		return
	}
	if errors.Is(result.Err, exec.ErrNotFound) {
		result.FailureKind = FailureNotFound
		return
	}
	switch result.ExitCode {
	case 126: // POSIX: cannot execute (permission denied)
		result.FailureKind = FailurePermission
	case 127: // POSIX: command not found
		result.FailureKind = FailureNotFound
	case -1: // OS-level exec failure, not a command exit code
		result.FailureKind = FailureUnknown
	default:
		if result.ExitCode > 0 {
			stderr := strings.ToLower(string(result.Stderr))
			if strings.Contains(stderr, "permission denied") ||
				strings.Contains(stderr, "operation not permitted") {
				result.FailureKind = FailurePermission
			} else {
				result.FailureKind = FailureCommandErr
			}
		} else {
			result.FailureKind = FailureUnknown
		}
	}
}
