// Package legacy decides whether a flagged line is pre-existing code that
// merely moved, was re-indented, or was touched incidentally. Legacy
// matches are suppressed from active violations and counted separately.
package legacy

import (
	"regexp"
	"strings"

	"github.com/hashicorp/go-set/v2"

	"github.com/protheus-tools/revisor/lib/advpl"
	"github.com/protheus-tools/revisor/lib/model"
)

// BaselineIndex holds one file's content at the comparison revision: the
// raw text for identifier lookups and the set of normalized lines for
// whole-line lookups. Built lazily, once per file per run.
type BaselineIndex struct {
	Raw        string
	Normalized *set.Set[string]
}

func NewBaselineIndex(content string) *BaselineIndex {
	result := &BaselineIndex{
		Raw:        content,
		Normalized: set.New[string](100),
	}

	for _, line := range strings.Split(content, "\n") {
		if n := advpl.Normalize(line); n != "" {
			result.Normalized.Insert(n)
		}
	}

	return result
}

// RemovedSet collects the normalized forms of the lines this same diff
// removed from the file. An added line matching one of them is a move or
// re-indentation, not new code.
func RemovedSet(f *model.FileChangeSet) *set.Set[string] {
	result := set.New[string](len(f.Removed))
	for _, line := range f.Removed {
		if n := advpl.Normalize(line.Text); n != "" {
			result.Insert(n)
		}
	}
	return result
}

type Classifier struct {
	removed     *set.Set[string]
	baseline    *BaselineIndex
	identifiers map[string]*regexp.Regexp
}

func NewClassifier(removed *set.Set[string], baseline *BaselineIndex) *Classifier {
	return &Classifier{
		removed:     removed,
		baseline:    baseline,
		identifiers: map[string]*regexp.Regexp{},
	}
}

// IsLegacyLine applies the three heuristics in order: blank or pure
// comment lines are never a new violation; a line present in the removed
// set moved or was re-indented; a line present anywhere in the baseline
// already existed before this change set.
func (c *Classifier) IsLegacyLine(text string) bool {
	normalized := advpl.Normalize(text)

	if normalized == "" {
		return true
	}

	if strings.HasPrefix(normalized, "//") {
		return true
	}

	if c.removed != nil && c.removed.Contains(normalized) {
		return true
	}

	if c.baseline != nil && c.baseline.Normalized.Contains(normalized) {
		return true
	}

	return false
}

// IsLegacyIdentifier reports whether the bare identifier name appears as a
// whole word anywhere in the baseline file, tolerating identifiers whose
// surrounding line changed but whose name predates the change. Matchers
// are compiled once per identifier and reused across lines.
func (c *Classifier) IsLegacyIdentifier(identifier string) bool {
	if c.baseline == nil || c.baseline.Raw == "" || identifier == "" {
		return false
	}

	re, ok := c.identifiers[identifier]
	if !ok {
		re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(identifier) + `\b`)
		c.identifiers[identifier] = re
	}

	return re.MatchString(c.baseline.Raw)
}
