package advpl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protheus-tools/revisor/lib/advpl"
)

func TestExtractRoutine(t *testing.T) {
	t.Parallel()

	r := advpl.ExtractRoutine("User Function CalcTotal(nVal)")
	assert.NotNil(t, r)
	assert.Equal(t, "User Function", r.Kind)
	assert.Equal(t, "CalcTotal", r.Name)

	r = advpl.ExtractRoutine("  static function helper()")
	assert.NotNil(t, r)
	assert.Equal(t, "Static Function", r.Kind)
	assert.Equal(t, "helper", r.Name)

	r = advpl.ExtractRoutine("Class Order From LongNameClass")
	assert.NotNil(t, r)
	assert.Equal(t, "Class", r.Kind)
	assert.Equal(t, "Order", r.Name)

	assert.Nil(t, advpl.ExtractRoutine("Local x := 1"))
	assert.Nil(t, advpl.ExtractRoutine("// User Function Commented"))
}

func TestStaticDeclarations(t *testing.T) {
	t.Parallel()

	assert.True(t, advpl.IsStaticFunctionDecl("Static Function Helper()"))
	assert.True(t, advpl.IsStaticFunctionDecl("  static   func doIt()"))
	assert.False(t, advpl.IsStaticFunctionDecl("Static nCount := 0"))

	assert.True(t, advpl.IsStaticVariableDecl("Static nCount := 0"))
	assert.True(t, advpl.IsStaticVariableDecl("Static nCount"))
	assert.True(t, advpl.IsStaticVariableDecl("Static aList, aOther"))
	assert.True(t, advpl.IsStaticVariableDecl("Static cName As Character"))
	assert.False(t, advpl.IsStaticVariableDecl("Static Function Helper()"))
	assert.False(t, advpl.IsStaticVariableDecl("Local nCount := 0"))
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sql", advpl.DetectLanguage("SELECT * FROM SB1"))
	assert.Equal(t, "sql", advpl.DetectLanguage("delete from sa1 where 1=1"))
	assert.Equal(t, "advpl", advpl.DetectLanguage("Local nTot := 0"))
}

func TestIdentifierScanner(t *testing.T) {
	t.Parallel()

	s := advpl.NewIdentifierScanner(11)

	assert.Equal(t, []string{"nVeryLongName"}, s.Find("Local nVeryLongName := 1"))
	assert.Nil(t, s.Find("Local nShort := 1"))
	assert.Equal(t, []string{"cFirstLongOne", "cSecondLongOne"},
		s.Find("Private cFirstLongOne := '', cSecondLongOne Static cSecondLongOne"))

	exact := advpl.NewIdentifierScanner(11)
	assert.Equal(t, []string{"nElevenChar"}, exact.Find("Static nElevenChar := 0"))
}

func TestExtensions(t *testing.T) {
	t.Parallel()

	assert.True(t, advpl.IsSource("src/FATA010.PRW"))
	assert.True(t, advpl.IsSource("include/defs.ch"))
	assert.False(t, advpl.IsSource("README.md"))

	assert.True(t, advpl.HasExtension("a/b/file.prx", advpl.ProjectExtensions))
	assert.False(t, advpl.HasExtension("a/b/file.ch", advpl.ReviewExtensions))
}
