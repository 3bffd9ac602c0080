// Package logscan scans line-oriented log sources for keywords of interest and
// summarizes the qualifying occurrences over a trailing time window.
package logscan

// Key identifies one (log source, keyword) pair in the aggregated output.
type Key struct {
	// Source is the path of the log source the keyword was declared for.
	Source string `json:"source"`
	// Keyword is the literal substring matched case-insensitively in lines.
	Keyword string `json:"keyword"`
}

// Stats is the read-only summary computed for a Key.
type Stats struct {
	// Count is the number of occurrences inside the trailing window.
	Count int `json:"count"`
	// AvgIntervalSeconds is the mean of consecutive-occurrence deltas in
	// seconds. It is 0 when fewer than two occurrences exist.
	AvgIntervalSeconds float64 `json:"avg_interval_seconds"`
}

// Source declares a log source and the keywords to look for in it.
type Source struct {
	// Path is the filesystem path of the line-oriented log file.
	Path string
	// Keywords are the literal substrings of interest.
	Keywords []string
}
