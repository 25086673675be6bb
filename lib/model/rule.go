package model

type RuleTarget string

const (
	TargetAdded   RuleTarget = "added"
	TargetRemoved RuleTarget = "removed"
)

type MatchKind string

const (
	MatchContains MatchKind = "contains"
	MatchRegex    MatchKind = "regex"
)

// LineMatcher is the compiled match predicate of a rule. It is derived from
// Match/Pattern once per run and owned exclusively by its Rule.
type LineMatcher func(line string) bool

type Rule struct {
	ID          string
	Description string
	Severity    Severity
	Language    string
	Target      RuleTarget
	Match       MatchKind
	Pattern     string
	IgnoreCase  bool
	Position    int

	// Disabled marks a rule whose pattern failed to compile. It stays in
	// the list so reporting can mention it, but it matches nothing.
	Disabled bool

	Matcher LineMatcher
}

func (r *Rule) Matches(line string) bool {
	if r.Disabled || r.Matcher == nil {
		return false
	}
	return r.Matcher(line)
}
