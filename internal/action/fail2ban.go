package action

import (
	"context"
	"fmt"

	"github.com/jiangege/servercli/internal/platform"
)

// InstallFail2ban installs Fail2Ban if it is missing and makes sure its
// service is enabled and running.
func InstallFail2ban(ctx context.Context, deps Deps, pm platform.PackageManager) error {
	query := append(append([]string{}, pm.Query...), "fail2ban")
	if run(ctx, deps, query, queryTimeout).Ok() {
		fmt.Fprintln(deps.Out, "Fail2Ban is already installed.")
	} else {
		fmt.Fprintln(deps.Out, "Installing Fail2Ban...")
		if res := run(ctx, deps, pm.Update, installTimeout); !res.Ok() {
			return fmt.Errorf("update package index (%s): %w", res.FailureKind, res.Err)
		}
		install := append(append([]string{}, pm.Install...), "fail2ban")
		if res := run(ctx, deps, install, installTimeout); !res.Ok() {
			return fmt.Errorf("install fail2ban (%s): %w", res.FailureKind, res.Err)
		}
	}

	if run(ctx, deps, []string{"sudo", "systemctl", "is-active", "fail2ban"}, queryTimeout).Ok() {
		fmt.Fprintln(deps.Out, "Fail2Ban is already running.")
		return nil
	}

	fmt.Fprintln(deps.Out, "Enabling and starting Fail2Ban service...")
	if res := run(ctx, deps, []string{"sudo", "systemctl", "enable", "fail2ban"}, queryTimeout); !res.Ok() {
		return fmt.Errorf("enable fail2ban service (%s): %w", res.FailureKind, res.Err)
	}
	if res := run(ctx, deps, []string{"sudo", "systemctl", "start", "fail2ban"}, queryTimeout); !res.Ok() {
		return fmt.Errorf("start fail2ban service (%s): %w", res.FailureKind, res.Err)
	}
	fmt.Fprintln(deps.Out, "Fail2Ban has been successfully started.")
	return nil
}
