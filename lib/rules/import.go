package rules

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/storages"
)

type jsonRule struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Language    string `json:"language"`
	Target      string `json:"target"`
	Match       string `json:"match"`
	Pattern     string `json:"pattern"`
	IgnoreCase  bool   `json:"ignore_case"`
}

// ImportFile replaces the stored rule set with the rules in a JSON file.
func ImportFile(console consoles.Console, storage storages.Storage, path string) (int, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "error reading rules file %v", path)
	}

	var parsed []jsonRule
	err = json.Unmarshal(contents, &parsed)
	if err != nil {
		return 0, errors.Wrapf(err, "error parsing rules file %v", path)
	}

	result := make([]*model.Rule, 0, len(parsed))
	for i, j := range parsed {
		if j.ID == "" {
			return 0, errors.Errorf("rule %v: missing id", i)
		}

		severity, err := model.ParseSeverity(strings.ToUpper(j.Severity))
		if err != nil {
			return 0, errors.Wrapf(err, "rule %v", j.ID)
		}

		rule := &model.Rule{
			ID:          j.ID,
			Description: j.Description,
			Severity:    severity,
			Language:    strings.ToLower(j.Language),
			Target:      model.RuleTarget(strings.ToLower(j.Target)),
			Match:       model.MatchKind(strings.ToLower(j.Match)),
			Pattern:     j.Pattern,
			IgnoreCase:  j.IgnoreCase,
			Position:    i,
		}
		if rule.Language == "" {
			rule.Language = "advpl"
		}
		if rule.Target == "" {
			rule.Target = model.TargetAdded
		}
		if rule.Match == "" {
			rule.Match = model.MatchContains
		}

		switch rule.Target {
		case model.TargetAdded, model.TargetRemoved:
		default:
			return 0, errors.Errorf("rule %v: unknown target %v", rule.ID, rule.Target)
		}

		result = append(result, rule)
	}

	err = storage.WriteRules(result)
	if err != nil {
		return 0, err
	}

	console.Printf("Imported %v rules from %v\n", len(result), path)
	return len(result), nil
}
