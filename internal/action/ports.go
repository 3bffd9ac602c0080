package action

import (
	"context"
	"fmt"
	"strings"
)

// netstatHeaderLines is the number of header lines `netstat -tuln` prints
// before the per-socket rows.
const netstatHeaderLines = 2

// ListPorts enumerates listening TCP/UDP ports and passes the raw socket rows
// through for operator review.
func ListPorts(ctx context.Context, deps Deps) error {
	fmt.Fprintln(deps.Out, "Scanning for open ports...")

	res := run(ctx, deps, []string{"sudo", "netstat", "-tuln"}, queryTimeout)
	if !res.Ok() {
		return fmt.Errorf("fetch port information (%s): %w: %s",
			res.FailureKind, res.Err, strings.TrimSpace(string(res.Stderr)))
	}

	fmt.Fprintln(deps.Out, "Open ports detected:")
	lines := strings.Split(strings.TrimSpace(string(res.Stdout)), "\n")
	for i, line := range lines {
		if i < netstatHeaderLines {
			continue
		}
		fmt.Fprintln(deps.Out, line)
	}

	fmt.Fprintln(deps.Out, "\nReview open ports for potential risks, such as unnecessary services or default ports.")
	return nil
}
