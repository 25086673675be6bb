// Package rules loads the declarative rule set from the workspace, seeding
// the built-in Protheus set on first use, and compiles each rule's match
// predicate. The engine consumes the resulting ordered list as-is.
package rules

import (
	"regexp"
	"strings"

	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/storages"
)

// Load returns the stored rule set, compiled, in stored order. An empty
// workspace is seeded with the defaults first.
func Load(console consoles.Console, storage storages.Storage) ([]*model.Rule, error) {
	result, err := storage.LoadRules()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		console.Printf("No rules in workspace, seeding default Protheus rule set\n")

		result = Defaults()
		err = storage.WriteRules(result)
		if err != nil {
			return nil, err
		}
	}

	Compile(console, result)
	return result, nil
}

// Compile derives each rule's matcher. A regex rule whose pattern does not
// compile is disabled for the run instead of aborting the review: one bad
// rule must not block files unaffected by it.
func Compile(console consoles.Console, rules []*model.Rule) {
	for _, rule := range rules {
		rule.Matcher = compileMatcher(console, rule)
	}
}

func compileMatcher(console consoles.Console, rule *model.Rule) model.LineMatcher {
	switch rule.Match {
	case model.MatchRegex:
		pattern := rule.Pattern
		if rule.IgnoreCase {
			pattern = "(?i)" + pattern
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			console.Warnf("rule %v: invalid pattern %q, rule disabled for this run: %v\n", rule.ID, rule.Pattern, err)
			rule.Disabled = true
			return nil
		}

		return re.MatchString

	default:
		pattern := rule.Pattern
		return func(line string) bool {
			return strings.Contains(line, pattern)
		}
	}
}
