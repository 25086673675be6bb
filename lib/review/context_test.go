package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/review"
)

func TestAnnotateContextWindow(t *testing.T) {
	t.Parallel()

	changes := model.NewFileChangeSet("a.prw")
	changes.AppendContext(1, "far above")
	changes.AppendContext(8, "near above")
	changes.AppendAdded(10, "Static nCount := 0")
	changes.AppendContext(12, "near below")
	changes.AppendContext(20, "far below")

	v := &model.Violation{
		FilePath:    "a.prw",
		Occurrences: []*model.Occurrence{model.NewLineOccurrence(10, "Static nCount := 0")},
	}

	review.AnnotateContext(map[string]*model.FileChangeSet{"a.prw": changes}, []*model.Violation{v}, 3)

	assert.Equal(t, []model.DiffLine{
		{Number: 8, Text: "near above", Sign: model.SignContext},
		{Number: 10, Text: "Static nCount := 0", Sign: model.SignAdded},
		{Number: 12, Text: "near below", Sign: model.SignContext},
	}, v.Occurrences[0].Context)
}

func TestAnnotateContextLegacyNote(t *testing.T) {
	t.Parallel()

	occ := model.NewLineOccurrence(5, "Static nOld := 1")
	occ.IsLegacy = true

	v := &model.Violation{
		FilePath:    "a.prw",
		Occurrences: []*model.Occurrence{occ},
	}

	review.AnnotateContext(map[string]*model.FileChangeSet{}, []*model.Violation{v}, 3)

	assert.Contains(t, occ.LegacyNote, "comparison branch")
	assert.Empty(t, occ.Context)
}

func TestAnnotateContextSkipsFileLevelOccurrences(t *testing.T) {
	t.Parallel()

	changes := model.NewFileChangeSet("a.prw")
	changes.AppendAdded(1, "Class Order")

	occ := model.NewFileOccurrence("(entire file)")
	v := &model.Violation{
		FilePath:    "a.prw",
		Occurrences: []*model.Occurrence{occ},
	}

	review.AnnotateContext(map[string]*model.FileChangeSet{"a.prw": changes}, []*model.Violation{v}, 3)

	assert.Empty(t, occ.Context)
	assert.Empty(t, occ.LegacyNote)
}
