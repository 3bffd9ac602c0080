// Package action implements the one-shot administrative actions: installing
// the intrusion-prevention daemon, enumerating listening ports, installing
// baseline utilities, and purging privacy-sensitive logs. All process
// invocation goes through the command.Runner abstraction.
package action

import (
	"context"
	"io"
	"time"

	"github.com/jiangege/servercli/internal/command"
)

const (
	// queryTimeout bounds quick read-only queries (dpkg -l, systemctl is-active).
	queryTimeout = 30 * time.Second
	// installTimeout bounds package-manager operations.
	installTimeout = 5 * time.Minute
)

// Deps carries the collaborators an action needs, so tests can substitute a
// fake runner and a scripted confirmation prompt.
type Deps struct {
	// Runner executes external commands.
	Runner command.Runner
	// Out receives user-facing output.
	Out io.Writer
	// Confirm asks the operator a yes/no question before destructive steps.
	Confirm func(prompt string) bool
}

// run executes an argv form (first element is the binary) with the given timeout.
func run(ctx context.Context, deps Deps, argv []string, timeout time.Duration) command.Result {
	return deps.Runner.Run(ctx, command.Spec{
		Name:    argv[0],
		Args:    argv[1:],
		Timeout: timeout,
	})
}
