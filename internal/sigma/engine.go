// Package sigma evaluates Sigma detection rules against scan occurrences.
package sigma

import (
	"context"
	"embed"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	sigmalib "github.com/bradleyjkemp/sigma-go"
	"github.com/bradleyjkemp/sigma-go/evaluator"

	"github.com/jiangege/servercli/internal/logscan"
)

//go:embed rules
var embeddedRules embed.FS

// Engine evaluates Sigma rules against keyword occurrences.
type Engine struct {
	rules []evaluator.RuleEvaluator
}

// NewDefault creates an Engine loaded with the built-in embedded Sigma rules.
func NewDefault() (*Engine, error) {
	sub, err := fs.Sub(embeddedRules, "rules")
	if err != nil {
		return nil, err
	}
	return New(sub)
}

// New creates an Engine by loading Sigma rules from the given FS.
// All .yml/.yaml files are parsed as Sigma rules.
func New(rulesFS fs.FS) (*Engine, error) {
	var rules []evaluator.RuleEvaluator

	err := fs.WalkDir(rulesFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := filepath.Ext(path)
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}
		data, err := fs.ReadFile(rulesFS, path)
		if err != nil {
			return err
		}
		rule, err := sigmalib.ParseRule(data)
		if err != nil {
			return err
		}
		rules = append(rules, *evaluator.ForRule(rule))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Engine{rules: rules}, nil
}

// Match records a Sigma rule hit against one occurrence.
type Match struct {
	Source    string `json:"source"`
	Keyword   string `json:"keyword"`
	RuleTitle string `json:"rule_title"`
	RuleID    string `json:"rule_id,omitempty"`
	Level     string `json:"level"` // informational | low | medium | high | critical
	Line      string `json:"line"`  // matched log line for evidence
}

// MatchAll evaluates all rules against each occurrence and returns matches.
// Rules are scoped by logsource.category, which must match the occurrence's
// source class (log file basename without extension, e.g. "auth").
func (e *Engine) MatchAll(ctx context.Context, occurrences []logscan.Occurrence) []Match {
	var matches []Match
	for _, occ := range occurrences {
		class := sourceClass(occ.Source)
		event := map[string]interface{}{
			"source":    occ.Source,
			"keyword":   occ.Keyword,
			"message":   occ.Line,
			"timestamp": occ.Time.Format(time.RFC3339),
		}

		for _, ev := range e.rules {
			cat := ev.Rule.Logsource.Category
			if cat != "" && cat != class {
				continue
			}
			res, err := ev.Matches(ctx, event)
			if err != nil || !res.Match {
				continue
			}
			matches = append(matches, Match{
				Source:    occ.Source,
				Keyword:   occ.Keyword,
				RuleTitle: ev.Rule.Title,
				RuleID:    ev.Rule.ID,
				Level:     ev.Rule.Level,
				Line:      occ.Line,
			})
		}
	}
	return matches
}

// sourceClass maps a log path to the category rules scope on:
// /var/log/auth.log -> auth, /var/log/syslog -> syslog.
func sourceClass(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
