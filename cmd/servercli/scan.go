package main

import (
	"github.com/jiangege/servercli/internal/orchestrator"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "scan",
		Aliases: []string{"cl"},
		Short:   "Check system security logs for suspicious activities",
		RunE:    runScan,
	}
	cmd.Flags().Duration("window", 0, "override the scan window from the config (e.g. 24h, 90m)")
	cmd.Flags().Bool("all", false, "include keywords with no occurrences in the summary")
	cmd.Flags().String("output", "", "save a JSON evidence package under this directory")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetDuration("window")
	all, _ := cmd.Flags().GetBool("all")
	output, _ := cmd.Flags().GetString("output")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	orch := orchestrator.New(cfg, orchestrator.Options{
		Window:      window,
		IncludeZero: all,
		Output:      output,
		Verbose:     verbose,
	})
	return orch.Run(cmd.Context())
}
