package model

import (
	"time"

	"github.com/samber/lo"
)

type ReviewStatus string

const (
	StatusOK      ReviewStatus = "OK"
	StatusRefused ReviewStatus = "REFUSED"
)

const MergeConflictRuleID = "MERGE_CONFLICT"

// ReviewRun is one execution of the review pipeline, with everything the
// reporting layer needs.
type ReviewRun struct {
	ID            UUID
	Date          time.Time
	Branch        string
	CompareBranch string
	Ahead         int
	Behind        int
	Status        ReviewStatus
	ChangedFiles  []string
	ConflictFiles []string
	Violations    []*Violation
}

func NewReviewRun(branch, compareBranch string) *ReviewRun {
	return &ReviewRun{
		ID:            NewUUID("r"),
		Date:          time.Now(),
		Branch:        branch,
		CompareBranch: compareBranch,
		Status:        StatusOK,
	}
}

// RuleViolations returns the violations that came from rules, excluding the
// merge-conflict pseudo-violations.
func (r *ReviewRun) RuleViolations() []*Violation {
	return lo.Filter(r.Violations, func(v *Violation, _ int) bool {
		return v.RuleID != MergeConflictRuleID
	})
}

type ReviewSummary struct {
	Violations     int              `json:"violations"`
	Occurrences    int              `json:"occurrences"`
	BySeverity     map[Severity]int `json:"by_severity"`
	MergeConflicts int              `json:"merge_conflicts"`
	LegacyTotal    int              `json:"legacy_code_count"`
}

// Summary aggregates occurrence counts by severity, plus the totals the
// console and the results API display. Violations carry only non-legacy
// occurrences; the suppressed matches are summed from LegacyCount.
func (r *ReviewRun) Summary() *ReviewSummary {
	result := &ReviewSummary{
		Violations:     len(r.RuleViolations()),
		MergeConflicts: len(r.ConflictFiles),
		BySeverity:     map[Severity]int{},
	}

	for _, v := range r.Violations {
		result.Occurrences += len(v.Occurrences)
		result.BySeverity[v.Severity] += len(v.Occurrences)
		result.LegacyTotal += v.LegacyCount
	}

	return result
}
