package main

import (
	"os"

	"github.com/jiangege/servercli/internal/action"
	"github.com/jiangege/servercli/internal/command"
	"github.com/jiangege/servercli/internal/platform"
	"github.com/spf13/cobra"
)

// actionDeps builds the production dependencies for the administrative actions.
func actionDeps() action.Deps {
	return action.Deps{
		Runner:  command.NewExecRunner(),
		Out:     os.Stdout,
		Confirm: confirmPrompt(os.Stdin, os.Stdout),
	}
}

func newFail2banCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "fail2ban",
		Aliases: []string{"if2"},
		Short:   "Install and enable Fail2Ban",
		RunE: func(cmd *cobra.Command, args []string) error {
			pm, err := platform.DetectPackageManager()
			if err != nil {
				return err
			}
			return action.InstallFail2ban(cmd.Context(), actionDeps(), pm)
		},
	}
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ports",
		Aliases: []string{"lp"},
		Short:   "List all open ports and identify potentially risky ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return action.ListPorts(cmd.Context(), actionDeps())
		},
	}
}

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tools",
		Aliases: []string{"it"},
		Short:   "Install common system utilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pm, err := platform.DetectPackageManager()
			if err != nil {
				return err
			}
			tools := make([]action.Tool, 0, len(cfg.Tools.Packages))
			for _, p := range cfg.Tools.Packages {
				tools = append(tools, action.Tool{Name: p.Name, Description: p.Description})
			}
			return action.InstallTools(cmd.Context(), actionDeps(), pm, tools)
		},
	}
}

func newPrivacyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "privacy",
		Aliases: []string{"cp"},
		Short:   "Clean privacy logs and display SSH login records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			deps := actionDeps()
			if yes, _ := cmd.Flags().GetBool("yes"); yes {
				deps.Confirm = func(string) bool { return true }
			}
			return action.CleanPrivacyLogs(cmd.Context(), deps, cfg.Privacy.LogFiles)
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}
