package rules

import (
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/review"
)

// Defaults is the built-in Protheus normative rule set, seeded into a new
// workspace. The four bespoke IDs are recognized by the engine; the rest
// are generic pattern rules.
func Defaults() []*model.Rule {
	result := []*model.Rule{
		{
			ID:          review.RuleDocRequirement,
			Description: "Routines and classes must be documented with a protheus.doc block",
			Severity:    model.SeverityMedium,
			Language:    "advpl",
			Target:      model.TargetAdded,
		},
		{
			ID:          review.RuleDummyEntryPoint,
			Description: "Files declaring a Class must provide a User Function entry point",
			Severity:    model.SeverityMedium,
			Language:    "advpl",
			Target:      model.TargetAdded,
		},
		{
			ID:          review.RuleRestrictedScope,
			Description: "Static variables must not be declared at file scope",
			Severity:    model.SeverityHigh,
			Language:    "advpl",
			Target:      model.TargetAdded,
		},
		{
			ID:          "Normativa 3.21-3",
			Description: "Private variables must not be used (new uses only)",
			Severity:    model.SeverityHigh,
			Language:    "advpl",
			Target:      model.TargetAdded,
			Match:       model.MatchRegex,
			Pattern:     `\bPrivate\b`,
			IgnoreCase:  true,
		},
		{
			ID:          review.RuleLongIdentifier,
			Description: "Variable names must not exceed 10 characters (new variables only)",
			Severity:    model.SeverityLow,
			Language:    "advpl",
			Target:      model.TargetAdded,
		},
		{
			ID:          "Normativa 5.2",
			Description: "SELECT * is not allowed in embedded SQL",
			Severity:    model.SeverityMedium,
			Language:    "sql",
			Target:      model.TargetAdded,
			Match:       model.MatchRegex,
			Pattern:     `\bselect\s+\*`,
			IgnoreCase:  true,
		},
		{
			ID:          "Normativa 5.7",
			Description: "Direct DELETE statements are not allowed in embedded SQL",
			Severity:    model.SeverityHigh,
			Language:    "sql",
			Target:      model.TargetAdded,
			Match:       model.MatchRegex,
			Pattern:     `\bdelete\s+from\b`,
			IgnoreCase:  true,
		},
		{
			ID:          "Normativa 6.1",
			Description: "ConOut must not be left in production code",
			Severity:    model.SeverityLow,
			Language:    "advpl",
			Target:      model.TargetAdded,
			Match:       model.MatchContains,
			Pattern:     "ConOut(",
		},
		{
			ID:          "Normativa 6.4",
			Description: "protheus.doc blocks must not be removed",
			Severity:    model.SeverityLow,
			Language:    "advpl",
			Target:      model.TargetRemoved,
			Match:       model.MatchRegex,
			Pattern:     `\{\s*protheus\.doc\s*\}`,
			IgnoreCase:  true,
		},
	}

	for i, rule := range result {
		rule.Position = i
		if rule.Language == "" {
			rule.Language = "advpl"
		}
		if rule.Target == "" {
			rule.Target = model.TargetAdded
		}
		if rule.Match == "" {
			rule.Match = model.MatchContains
		}
	}

	return result
}
