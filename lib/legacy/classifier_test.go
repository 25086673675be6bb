package legacy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protheus-tools/revisor/lib/legacy"
	"github.com/protheus-tools/revisor/lib/model"
)

func TestBlankAndCommentLinesAreLegacy(t *testing.T) {
	t.Parallel()

	c := legacy.NewClassifier(nil, nil)

	assert.True(t, c.IsLegacyLine(""))
	assert.True(t, c.IsLegacyLine("   "))
	assert.True(t, c.IsLegacyLine("// just a comment"))
	assert.True(t, c.IsLegacyLine("   // indented comment"))
	assert.False(t, c.IsLegacyLine("Local nNew := 1"))
}

func TestRemovedLinesAreLegacy(t *testing.T) {
	t.Parallel()

	changes := model.NewFileChangeSet("a.prw")
	changes.AppendRemoved(5, "Static nCount := 0")

	c := legacy.NewClassifier(legacy.RemovedSet(changes), nil)

	assert.True(t, c.IsLegacyLine("  Static   nCount:=0"))
	assert.False(t, c.IsLegacyLine("Static nOther := 0"))
}

func TestBaselineLinesAreLegacy(t *testing.T) {
	t.Parallel()

	baseline := legacy.NewBaselineIndex("Local nTot := 0\nStatic nOld := 1  // kept\n")
	c := legacy.NewClassifier(nil, baseline)

	assert.True(t, c.IsLegacyLine("static nold:=1"))
	assert.True(t, c.IsLegacyLine("Local nTot := 0"))
	assert.False(t, c.IsLegacyLine("Local nTot := 1"))
}

func TestLegacyIdentifier(t *testing.T) {
	t.Parallel()

	baseline := legacy.NewBaselineIndex("If nVeryLongName > 0\n   DoIt(nVeryLongName)\nEndIf\n")
	c := legacy.NewClassifier(nil, baseline)

	assert.True(t, c.IsLegacyIdentifier("nVeryLongName"))
	assert.True(t, c.IsLegacyIdentifier("NVERYLONGNAME"))
	assert.False(t, c.IsLegacyIdentifier("nVeryLong"))
	assert.False(t, c.IsLegacyIdentifier(""))

	// Repeated lookups reuse the cached matcher.
	assert.True(t, c.IsLegacyIdentifier("nVeryLongName"))
	assert.False(t, c.IsLegacyIdentifier("nVeryLong"))

	empty := legacy.NewClassifier(nil, nil)
	assert.False(t, empty.IsLegacyIdentifier("nVeryLongName"))
}
