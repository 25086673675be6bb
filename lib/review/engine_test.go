package review_test

import (
	"testing"

	"github.com/bloomberg/go-testgroup"
	"github.com/samber/lo"

	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/diffparse"
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/review"
	"github.com/protheus-tools/revisor/lib/rules"
)

func TestEngine(t *testing.T) {
	testgroup.RunInParallel(t, &EngineTests{})
}

type EngineTests struct {
}

func (g *EngineTests) parse(t *testgroup.T, diff string) map[string]*model.FileChangeSet {
	files, err := diffparse.Parse(diff)
	t.NoError(err)
	return files
}

func (g *EngineTests) rules(t *testgroup.T, ids ...string) []*model.Rule {
	all := rules.Defaults()
	rules.Compile(consoles.NewStdOutConsole(), all)

	result := lo.Filter(all, func(r *model.Rule, _ int) bool {
		return lo.Contains(ids, r.ID)
	})
	t.Len(result, len(ids))
	return result
}

func (g *EngineTests) evaluate(t *testgroup.T, diff string, baseline map[string]string, ids ...string) []*model.Violation {
	files := g.parse(t, diff)

	engine := review.NewEngine(consoles.NewStdOutConsole(), g.rules(t, ids...),
		func(path string) (string, error) {
			return baseline[path], nil
		},
		nil)

	return engine.Evaluate(files)
}

func (g *EngineTests) DocRequirementFlagsUndocumentedRoutine(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,2 @@
+User Function NewRoutine()
+Return
`

	vs := g.evaluate(t, diff, nil, review.RuleDocRequirement)

	t.Len(vs, 1)
	t.Len(vs[0].Occurrences, 1)
	t.Equal(1, *vs[0].Occurrences[0].LineNumber)
	t.Contains(vs[0].Occurrences[0].Annotation, "NewRoutine")
	t.Equal(0, vs[0].LegacyCount)
}

func (g *EngineTests) DocRequirementAcceptsNearbyDocBlock(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,1 +1,3 @@
 /*/{Protheus.doc} NewRoutine
+Does something
+User Function NewRoutine()
`

	vs := g.evaluate(t, diff, nil, review.RuleDocRequirement)

	t.Empty(vs)
}

func (g *EngineTests) DocRequirementHasNoLegacyException(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,1 @@
+User Function OldOne()
`

	baseline := map[string]string{"a.prw": "User Function OldOne()\nReturn\n"}

	vs := g.evaluate(t, diff, baseline, review.RuleDocRequirement)

	t.Len(vs, 1)
	t.Equal(0, vs[0].LegacyCount)
}

func (g *EngineTests) DummyEntryPointFlagsClassWithoutUserFunction(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,2 @@
+Class Order From FWModelDef
+EndClass
`

	vs := g.evaluate(t, diff, nil, review.RuleDummyEntryPoint)

	t.Len(vs, 1)
	t.Len(vs[0].Occurrences, 1)
	t.Nil(vs[0].Occurrences[0].LineNumber)
	t.Equal("(entire file)", vs[0].Occurrences[0].Text)
}

func (g *EngineTests) DummyEntryPointAcceptsEntryPoint(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,3 @@
+User Function OrderEP()
+Class Order From FWModelDef
+EndClass
`

	vs := g.evaluate(t, diff, nil, review.RuleDummyEntryPoint)

	t.Empty(vs)
}

func (g *EngineTests) RestrictedScopeExemptsStaticFunctions(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,2 @@
+Static Function Helper()
+Static nCount := 0
`

	vs := g.evaluate(t, diff, nil, review.RuleRestrictedScope)

	t.Len(vs, 1)
	t.Len(vs[0].Occurrences, 1)
	t.Equal("Static nCount := 0", vs[0].Occurrences[0].Text)
}

func (g *EngineTests) RestrictedScopeSuppressesLegacyLines(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,2 @@
+Static nOld := 1
+Static nNew := 2
`

	baseline := map[string]string{"a.prw": "Static nOld := 1\n"}

	vs := g.evaluate(t, diff, baseline, review.RuleRestrictedScope)

	t.Len(vs, 1)
	t.Len(vs[0].Occurrences, 1)
	t.Equal(1, vs[0].LegacyCount)
	t.Equal("Static nNew := 2", vs[0].Occurrences[0].Text)
	t.False(vs[0].Occurrences[0].IsLegacy)
}

func (g *EngineTests) RestrictedScopeDropsAllLegacyViolation(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,1 +1,1 @@
-Static nOld := 1
+   Static nOld:=1
`

	vs := g.evaluate(t, diff, nil, review.RuleRestrictedScope)

	t.Empty(vs)
}

func (g *EngineTests) LongIdentifierFlagsNewName(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,2 @@
+Local nShort := 1
+Local nVeryLongName := 2
`

	vs := g.evaluate(t, diff, nil, review.RuleLongIdentifier)

	t.Len(vs, 1)
	t.Len(vs[0].Occurrences, 1)
	t.Contains(vs[0].Occurrences[0].Annotation, "nVeryLongName")
	t.Contains(vs[0].Occurrences[0].Annotation, "13")
}

func (g *EngineTests) LongIdentifierLegacyByName(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,1 @@
+Local nVeryLongName := 99
`

	baseline := map[string]string{"a.prw": "If nVeryLongName > 0\nEndIf\n"}

	vs := g.evaluate(t, diff, baseline, review.RuleLongIdentifier)

	t.Empty(vs)
}

func (g *EngineTests) GenericSqlRuleScopedByLineLanguage(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,2 @@
+cQry := "SELECT * FROM SB1"
+Local aAll := {}
`

	vs := g.evaluate(t, diff, nil, "Normativa 5.2")

	t.Len(vs, 1)
	t.Len(vs[0].Occurrences, 1)
	t.Equal(1, *vs[0].Occurrences[0].LineNumber)
}

func (g *EngineTests) RemovedTargetRuleHasNoLegacySuppression(t *testgroup.T) {
	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,2 +1,1 @@
-/*/{Protheus.doc} OldRoutine
 User Function OldRoutine()
`

	baseline := map[string]string{"a.prw": "/*/{Protheus.doc} OldRoutine\nUser Function OldRoutine()\n"}

	vs := g.evaluate(t, diff, baseline, "Normativa 6.4")

	t.Len(vs, 1)
	t.Equal(0, vs[0].LegacyCount)
	t.Equal(1, *vs[0].Occurrences[0].LineNumber)
}

func (g *EngineTests) AdvplRulesSkipNonAdvplFiles(t *testgroup.T) {
	diff := `diff --git a/readme.md b/readme.md
--- a/readme.md
+++ b/readme.md
@@ -1,0 +1,1 @@
+Static nCount := 0
`

	vs := g.evaluate(t, diff, nil, review.RuleRestrictedScope)

	t.Empty(vs)
}

func (g *EngineTests) DisabledRuleMatchesNothing(t *testgroup.T) {
	bad := []*model.Rule{{
		ID:          "Custom 1",
		Description: "broken",
		Severity:    model.SeverityLow,
		Language:    "advpl",
		Target:      model.TargetAdded,
		Match:       model.MatchRegex,
		Pattern:     `(\bConOut`,
	}}
	rules.Compile(consoles.NewStdOutConsole(), bad)
	t.True(bad[0].Disabled)

	diff := `diff --git a/a.prw b/a.prw
--- a/a.prw
+++ b/a.prw
@@ -1,0 +1,1 @@
+ConOut("debug")
`

	engine := review.NewEngine(consoles.NewStdOutConsole(), bad, nil, nil)
	vs := engine.Evaluate(g.parse(t, diff))

	t.Empty(vs)
}
