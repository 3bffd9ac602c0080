// Package orchestrator coordinates the scan pipeline:
// aggregate → rule match → render → evidence.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jiangege/servercli/internal/config"
	"github.com/jiangege/servercli/internal/logscan"
	"github.com/jiangege/servercli/internal/reporter"
	"github.com/jiangege/servercli/internal/sigma"
)

// Options holds CLI flags for the scan pipeline.
type Options struct {
	// Window overrides the configured scan window when non-zero.
	Window time.Duration
	// IncludeZero renders (source, keyword) rows with no occurrences too.
	IncludeZero bool
	// Output is the evidence base directory; empty disables evidence saving.
	Output string
	// Verbose enables per-stage diagnostics.
	Verbose bool
}

// Orchestrator runs the scan pipeline.
type Orchestrator struct {
	cfg    *config.Config
	opts   Options
	out    io.Writer
	errout io.Writer
}

// New creates an Orchestrator writing the summary to stdout and progress to
// stderr.
func New(cfg *config.Config, opts Options) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		opts:   opts,
		out:    os.Stdout,
		errout: os.Stderr,
	}
}

// SetOutput redirects the summary and progress streams (used in tests).
func (o *Orchestrator) SetOutput(out, errout io.Writer) {
	o.out = out
	o.errout = errout
}

// Run executes the full scan pipeline. The aggregation itself never fails;
// only evidence writing can return an error.
func (o *Orchestrator) Run(ctx context.Context) error {
	window := o.opts.Window
	if window == 0 {
		window = o.cfg.Window()
	}

	sources := make([]logscan.Source, 0, len(o.cfg.Scan.Sources))
	for _, src := range o.cfg.Scan.Sources {
		sources = append(sources, logscan.Source{Path: src.Path, Keywords: src.Keywords})
	}

	fmt.Fprintf(o.errout, "[*] Scanning %d log sources (window %s)...\n", len(sources), window)
	start := time.Now()

	agg := logscan.New()
	agg.SetDiagnostics(o.errout)
	now := time.Now().UTC()
	stats, occurrences := agg.Scan(sources, now, window)

	var matches []sigma.Match
	engine, err := sigma.NewDefault()
	if err != nil {
		fmt.Fprintf(o.errout, "[orchestrator] warning: sigma engine init: %v\n", err)
	} else {
		matches = engine.MatchAll(ctx, occurrences)
		if len(matches) > 0 {
			fmt.Fprintf(o.errout, "[*] Sigma: %d rule match(es) detected\n", len(matches))
		}
	}

	fmt.Fprintf(o.errout, "[*] Scan complete (%s)\n", time.Since(start).Round(time.Millisecond))

	reporter.Render(o.out, stats, window, o.opts.IncludeZero)
	reporter.RenderMatches(o.out, matches)

	if o.opts.Output == "" {
		return nil
	}

	hostname, _ := os.Hostname()
	outputDir := reporter.GenerateOutputDir(o.opts.Output)
	if o.opts.Verbose {
		fmt.Fprintf(o.errout, "[orchestrator] output: %s\n", outputDir)
	}

	writer, err := reporter.NewWriter(outputDir)
	if err != nil {
		return fmt.Errorf("create writer: %w", err)
	}
	report := reporter.ScanReport{
		Hostname:    hostname,
		GeneratedAt: now,
		Window:      window.String(),
		Entries:     reporter.Entries(stats),
		Matches:     matches,
	}
	if err := writer.SaveScan(report); err != nil {
		return fmt.Errorf("save scan results: %w", err)
	}
	if err := writer.SaveManifest(hostname); err != nil {
		fmt.Fprintf(o.errout, "[orchestrator] warning: manifest: %v\n", err)
	}

	fmt.Fprintf(o.errout, "[*] Evidence saved to: %s\n", outputDir)
	return nil
}
