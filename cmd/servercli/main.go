// Package main is the CLI entry point for servercli.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jiangege/servercli/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "servercli",
		Short: "Server security hardening tool",
		Long: `servercli inspects authentication and system logs for suspicious
activity and performs one-shot hardening actions: installing Fail2Ban,
enumerating listening ports, installing baseline utilities, and purging
privacy-sensitive log files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "servercli.toml", "path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	rootCmd.AddCommand(
		newScanCmd(),
		newFail2banCmd(),
		newPortsCmd(),
		newToolsCmd(),
		newPrivacyCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig resolves the config path (flag, then SERVERCLI_CONFIG) and loads it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if env := os.Getenv("SERVERCLI_CONFIG"); env != "" && !cmd.Flags().Changed("config") {
		path = env
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// confirmPrompt returns an interactive yes/no prompt reading from in.
// Anything but "y" (case-insensitive) declines.
func confirmPrompt(in io.Reader, out io.Writer) func(string) bool {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		return strings.EqualFold(strings.TrimSpace(line), "y")
	}
}
