package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewFilters(t *testing.T) {
	t.Parallel()

	project, review, err := reviewFilters(&ReviewOptions{
		Include: []string{"src/**"},
		Exclude: []string{"src/legacy/**"},
	})
	assert.NoError(t, err)

	assert.True(t, project("src/FATA010.prx"))
	assert.False(t, review("src/FATA010.prx"))
	assert.True(t, review("src/FATA010.prw"))
	assert.False(t, project("src/legacy/OLD001.prw"))
	assert.False(t, project("other/FATA010.prw"))
	assert.False(t, project("src/readme.md"))
}

func TestReviewFiltersDefaultToAllPaths(t *testing.T) {
	t.Parallel()

	project, review, err := reviewFilters(&ReviewOptions{})
	assert.NoError(t, err)

	assert.True(t, project("anywhere/FATA010.prg"))
	assert.True(t, review("anywhere/FATA010.prw"))
	assert.False(t, review("anywhere/FATA010.prg"))
}

func TestReviewFiltersRejectBadPattern(t *testing.T) {
	t.Parallel()

	_, _, err := reviewFilters(&ReviewOptions{Include: []string{"[invalid"}})
	assert.Error(t, err)
}
