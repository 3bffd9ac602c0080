package action

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// CleanPrivacyLogs displays recent login records, asks for confirmation, and
// truncates the given privacy-sensitive log files. Missing files and
// permission errors are reported per file and do not abort the sweep.
func CleanPrivacyLogs(ctx context.Context, deps Deps, logFiles []string) error {
	fmt.Fprintln(deps.Out, "Recent SSH login records:")
	if res := run(ctx, deps, []string{"last"}, queryTimeout); res.Ok() {
		fmt.Fprint(deps.Out, string(res.Stdout))
	} else {
		fmt.Fprintf(deps.Out, "Error fetching SSH records: %v\n", res.Err)
	}

	if !deps.Confirm("Do you want to clean privacy logs? (y/N): ") {
		fmt.Fprintln(deps.Out, "Operation cancelled.")
		return nil
	}

	for _, path := range logFiles {
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(deps.Out, "Log file %s not found\n", path)
			continue
		}
		if err := os.Truncate(path, 0); err != nil {
			if errors.Is(err, os.ErrPermission) {
				fmt.Fprintf(deps.Out, "Permission denied for %s. Try running with sudo.\n", path)
			} else {
				fmt.Fprintf(deps.Out, "Failed to clean %s: %v\n", path, err)
			}
			continue
		}
		fmt.Fprintf(deps.Out, "Cleaned %s\n", path)
	}

	fmt.Fprintln(deps.Out, "Privacy logs cleaned successfully")
	return nil
}
