package rules_test

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"

	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/rules"
)

func TestDefaultsAreWellFormed(t *testing.T) {
	t.Parallel()

	defaults := rules.Defaults()
	assert.NotEmpty(t, defaults)

	ids := lo.Map(defaults, func(r *model.Rule, _ int) string { return r.ID })
	assert.Equal(t, len(ids), len(lo.Uniq(ids)))

	for i, r := range defaults {
		assert.Equal(t, i, r.Position)
		assert.NotEmpty(t, r.Description)
		assert.NotEmpty(t, r.Language)
		assert.NotEmpty(t, r.Target)
		assert.NotEmpty(t, r.Match)
	}
}

func TestCompileContains(t *testing.T) {
	t.Parallel()

	rule := &model.Rule{
		ID:      "Custom 1",
		Match:   model.MatchContains,
		Pattern: "ConOut(",
	}
	rules.Compile(consoles.NewStdOutConsole(), []*model.Rule{rule})

	assert.True(t, rule.Matches(`ConOut("debug")`))
	assert.False(t, rule.Matches(`conout("debug")`))
	assert.False(t, rule.Matches("Local x := 1"))
}

func TestCompileRegexIgnoreCase(t *testing.T) {
	t.Parallel()

	rule := &model.Rule{
		ID:         "Custom 2",
		Match:      model.MatchRegex,
		Pattern:    `\bPrivate\b`,
		IgnoreCase: true,
	}
	rules.Compile(consoles.NewStdOutConsole(), []*model.Rule{rule})

	assert.True(t, rule.Matches("private cVar := ''"))
	assert.True(t, rule.Matches("PRIVATE cVar"))
	assert.False(t, rule.Matches("PrivateHelper()"))
}

func TestCompileBadRegexDisablesRule(t *testing.T) {
	t.Parallel()

	rule := &model.Rule{
		ID:      "Custom 3",
		Match:   model.MatchRegex,
		Pattern: `(\bunclosed`,
	}
	rules.Compile(consoles.NewStdOutConsole(), []*model.Rule{rule})

	assert.True(t, rule.Disabled)
	assert.False(t, rule.Matches("anything"))
}
