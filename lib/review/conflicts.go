package review

import (
	"fmt"

	"github.com/protheus-tools/revisor/lib/model"
)

// ConflictViolations builds one CRITICAL pseudo-violation per file in
// conflict with the comparison branch. They are prepended to the rule
// violations and are the only findings that refuse a review.
func ConflictViolations(conflictFiles []string, compareBranch string) []*model.Violation {
	var result []*model.Violation

	for _, file := range conflictFiles {
		occ := model.NewFileOccurrence("(entire file)")
		occ.Annotation = fmt.Sprintf("'%v' conflicts with %v. Update the branch (merge or rebase) and resolve the conflicts before resubmitting.",
			file, compareBranch)

		result = append(result, &model.Violation{
			RuleID:      model.MergeConflictRuleID,
			Description: "Merge conflict detected - branch is out of date with the comparison branch",
			Severity:    model.SeverityCritical,
			FilePath:    file,
			Occurrences: []*model.Occurrence{occ},
			LegacyCount: 0,
		})
	}

	return result
}
