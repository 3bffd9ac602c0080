// Package reporter renders scan results for the terminal and saves the JSON
// evidence package.
package reporter

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jiangege/servercli/internal/logscan"
	"github.com/jiangege/servercli/internal/sigma"
)

// Entry is one (source, keyword) row of the scan summary.
type Entry struct {
	Source             string  `json:"source"`
	Keyword            string  `json:"keyword"`
	Count              int     `json:"count"`
	AvgIntervalSeconds float64 `json:"avg_interval_seconds"`
}

// Entries flattens the stats mapping into rows sorted by source, then keyword,
// so rendering and evidence output are deterministic.
func Entries(stats map[logscan.Key]logscan.Stats) []Entry {
	entries := make([]Entry, 0, len(stats))
	for key, s := range stats {
		entries = append(entries, Entry{
			Source:             key.Source,
			Keyword:            key.Keyword,
			Count:              s.Count,
			AvgIntervalSeconds: s.AvgIntervalSeconds,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Source != entries[j].Source {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].Keyword < entries[j].Keyword
	})
	return entries
}

// Render writes the human-readable scan summary. Rows with zero occurrences
// are omitted unless includeZero is set.
func Render(w io.Writer, stats map[logscan.Key]logscan.Stats, window time.Duration, includeZero bool) {
	var shown int
	for _, e := range Entries(stats) {
		if e.Count == 0 && !includeZero {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(w, "Suspicious activities in the last %s:\n", window)
		}
		shown++
		fmt.Fprintf(w, "Log: %s\n", e.Source)
		fmt.Fprintf(w, "  Keyword: %s\n", e.Keyword)
		fmt.Fprintf(w, "  Count: %d\n", e.Count)
		fmt.Fprintf(w, "  Average Interval: %.2f seconds\n\n", e.AvgIntervalSeconds)
	}
	if shown == 0 {
		fmt.Fprintf(w, "No suspicious log entries found in the last %s.\n", window)
	}
}

// RenderMatches writes the Sigma rule hits, one line per match.
func RenderMatches(w io.Writer, matches []sigma.Match) {
	if len(matches) == 0 {
		return
	}
	fmt.Fprintf(w, "Sigma rule matches (%d):\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(w, "  [%s] %s (%s)\n", m.Level, m.RuleTitle, m.Source)
	}
	fmt.Fprintln(w)
}
