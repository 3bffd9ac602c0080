package logscan

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	ahocorasick "github.com/BobuSumisu/aho-corasick"
)

// maxLineSize bounds a single log line; syslog lines can exceed the bufio
// default of 64 KiB when daemons dump stack traces.
const maxLineSize = 1024 * 1024

// Occurrence is a single qualifying keyword match within a source.
type Occurrence struct {
	// Source is the path of the log source the line came from.
	Source string `json:"source"`
	// Keyword is the keyword that matched, in its declared casing.
	Keyword string `json:"keyword"`
	// Time is the line's timestamp, normalized to UTC.
	Time time.Time `json:"time"`
	// Line is the raw matched line.
	Line string `json:"line"`
}

// Aggregator scans log sources and produces per-(source, keyword) statistics.
// It never fails as a whole: unreadable sources and unparseable timestamps are
// reported as diagnostics and skipped.
type Aggregator struct {
	diag io.Writer
}

// New creates an Aggregator writing diagnostics to stderr.
func New() *Aggregator {
	return &Aggregator{diag: os.Stderr}
}

// SetDiagnostics redirects diagnostic notices (used in tests).
func (a *Aggregator) SetDiagnostics(w io.Writer) {
	a.diag = w
}

// Aggregate scans each source for its keywords and returns one entry for every
// declared (source, keyword) pair — including pairs with zero qualifying
// occurrences — so callers can distinguish "no activity" from "key absent".
func (a *Aggregator) Aggregate(sources []Source, now time.Time, window time.Duration) map[Key]Stats {
	stats, _ := a.Scan(sources, now, window)
	return stats
}

// Scan is Aggregate plus the raw occurrences backing the statistics, in source
// order, for downstream rule matching.
// An occurrence qualifies when now.Sub(timestamp) <= window; timestamps ahead
// of now therefore qualify too, treating clock skew like recent activity.
func (a *Aggregator) Scan(sources []Source, now time.Time, window time.Duration) (map[Key]Stats, []Occurrence) {
	times := make(map[Key][]time.Time)
	for _, src := range sources {
		for _, kw := range src.Keywords {
			if kw == "" {
				continue
			}
			key := Key{Source: src.Path, Keyword: kw}
			if _, ok := times[key]; !ok {
				times[key] = nil
			}
		}
	}

	var occurrences []Occurrence
	for _, src := range sources {
		occurrences = append(occurrences, a.scanSource(src, now, window, times)...)
	}

	result := make(map[Key]Stats, len(times))
	for key, ts := range times {
		result[key] = computeStats(ts)
	}
	return result, occurrences
}

// scanSource streams one source line by line, appending qualifying occurrence
// timestamps for every keyword each line matches.
func (a *Aggregator) scanSource(src Source, now time.Time, window time.Duration, times map[Key][]time.Time) []Occurrence {
	matcher := newKeywordMatcher(src.Keywords)
	if matcher == nil {
		return nil
	}

	f, err := os.Open(src.Path)
	if err != nil {
		fmt.Fprintf(a.diag, "[logscan] source %s unavailable: %v\n", src.Path, err)
		return nil
	}
	defer f.Close()

	var occurrences []Occurrence
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		matched := matcher.match(line)
		if len(matched) == 0 {
			continue
		}

		ts, err := parseLeadingTimestamp(line)
		if err != nil {
			fmt.Fprintf(a.diag, "[logscan] skipping line with unrecognized timestamp: %s\n", strings.TrimSpace(line))
			continue
		}
		if now.Sub(ts) > window {
			continue
		}

		for _, kw := range matched {
			key := Key{Source: src.Path, Keyword: kw}
			times[key] = append(times[key], ts)
			occurrences = append(occurrences, Occurrence{
				Source:  src.Path,
				Keyword: kw,
				Time:    ts,
				Line:    line,
			})
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(a.diag, "[logscan] error reading %s: %v\n", src.Path, err)
	}
	return occurrences
}

// computeStats sorts occurrence times ascending and returns the count together
// with the mean of consecutive deltas in seconds.
func computeStats(times []time.Time) Stats {
	if len(times) == 0 {
		return Stats{}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	if len(times) < 2 {
		return Stats{Count: len(times)}
	}
	var total float64
	for i := 1; i < len(times); i++ {
		total += times[i].Sub(times[i-1]).Seconds()
	}
	return Stats{
		Count:              len(times),
		AvgIntervalSeconds: total / float64(len(times)-1),
	}
}

// keywordMatcher performs case-insensitive multi-pattern substring matching
// over a line in a single pass.
type keywordMatcher struct {
	trie     *ahocorasick.Trie
	keywords []string // original casing, indexed by pattern number
}

func newKeywordMatcher(keywords []string) *keywordMatcher {
	var patterns []string
	var originals []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		patterns = append(patterns, strings.ToLower(kw))
		originals = append(originals, kw)
	}
	if len(patterns) == 0 {
		return nil
	}
	trie := ahocorasick.NewTrieBuilder().AddStrings(patterns).Build()
	return &keywordMatcher{trie: trie, keywords: originals}
}

// match returns the distinct keywords contained in line, ignoring case.
func (m *keywordMatcher) match(line string) []string {
	hits := m.trie.MatchString(strings.ToLower(line))
	if len(hits) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(hits))
	var matched []string
	for _, h := range hits {
		if seen[h.Pattern()] {
			continue
		}
		seen[h.Pattern()] = true
		matched = append(matched, m.keywords[h.Pattern()])
	}
	return matched
}

// timestampLayouts are tried in order against the leading field of a line.
// Layouts without a zone are tagged as UTC, not converted.
var timestampLayouts = []struct {
	layout string
	naive  bool
}{
	{layout: time.RFC3339Nano},
	{layout: "2006-01-02T15:04:05.999999999", naive: true},
	{layout: "2006-01-02", naive: true},
}

// parseLeadingTimestamp extracts the first whitespace-delimited field of a
// line and parses it as an ISO-8601 timestamp.
func parseLeadingTimestamp(line string) (time.Time, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("empty line")
	}
	token := fields[0]
	for _, l := range timestampLayouts {
		if l.naive {
			if ts, err := time.ParseInLocation(l.layout, token, time.UTC); err == nil {
				return ts, nil
			}
			continue
		}
		if ts, err := time.Parse(l.layout, token); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", token)
}
