package action

import (
	"context"
	"fmt"

	"github.com/jiangege/servercli/internal/platform"
)

// Tool names one baseline utility to install.
type Tool struct {
	Name        string
	Description string
}

// InstallTools refreshes the package index and installs each tool in turn.
// A failed index update aborts; individual tool failures are reported and
// skipped.
func InstallTools(ctx context.Context, deps Deps, pm platform.PackageManager, tools []Tool) error {
	fmt.Fprintln(deps.Out, "Updating package list...")
	if res := run(ctx, deps, pm.Update, installTimeout); !res.Ok() {
		return fmt.Errorf("update package index (%s): %w", res.FailureKind, res.Err)
	}

	for _, tool := range tools {
		fmt.Fprintf(deps.Out, "\nInstalling %s (%s)...\n", tool.Name, tool.Description)
		install := append(append([]string{}, pm.Install...), tool.Name)
		if res := run(ctx, deps, install, installTimeout); !res.Ok() {
			fmt.Fprintf(deps.Out, "Failed to install %s: %v\n", tool.Name, res.Err)
			continue
		}
		fmt.Fprintf(deps.Out, "%s installed successfully\n", tool.Name)
	}
	return nil
}
