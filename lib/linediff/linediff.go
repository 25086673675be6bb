package linediff

import (
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Diff struct {
	Type  Operation
	Lines int
}

type Operation int8

const (
	DiffDelete Operation = Operation(diffmatchpatch.DiffDelete)
	DiffInsert Operation = Operation(diffmatchpatch.DiffInsert)
	DiffEqual  Operation = Operation(diffmatchpatch.DiffEqual)
)

func Do(src, dst string) []Diff {
	return DoWithTimeout(src, dst, time.Minute)
}

func DoWithTimeout(src, dst string, timeout time.Duration) []Diff {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = timeout
	wSrc, wDst := textsToLineIndexes(src, dst)
	dmpd := dmp.DiffMainRunes(wSrc, wDst, false)
	diffs := lineIndexesToDiff(dmpd)
	return diffs
}

// Range is a 1-based, inclusive line interval in the source text.
type Range struct {
	Start int
	End   int
}

// ChangedRanges projects a diff onto the source side: each delete covers
// the deleted source lines, each insert is anchored at the source line it
// splits. Used to detect overlapping edits from two branches.
func ChangedRanges(diffs []Diff) []Range {
	var result []Range
	srcLine := 1

	for _, d := range diffs {
		switch d.Type {
		case DiffEqual:
			srcLine += d.Lines

		case DiffDelete:
			result = append(result, Range{Start: srcLine, End: srcLine + d.Lines - 1})
			srcLine += d.Lines

		case DiffInsert:
			result = append(result, Range{Start: srcLine, End: srcLine})
		}
	}

	return result
}

func Overlap(a, b []Range) bool {
	for _, ra := range a {
		for _, rb := range b {
			if ra.Start <= rb.End && rb.Start <= ra.End {
				return true
			}
		}
	}
	return false
}

func lineIndexesToDiff(diffs []diffmatchpatch.Diff) []Diff {
	hydrated := make([]Diff, 0, len(diffs))
	for _, aDiff := range diffs {
		hydrated = append(hydrated, Diff{
			Type:  Operation(aDiff.Type),
			Lines: len(aDiff.Text),
		})
	}
	return hydrated
}

func textsToLineIndexes(text1, text2 string) ([]rune, []rune) {
	lineToIndex := make(map[string]int)
	indexes1 := textToLineIndexes(text1, lineToIndex)
	indexes2 := textToLineIndexes(text2, lineToIndex)
	return indexes1, indexes2
}

func textToLineIndexes(text string, lineToIndex map[string]int) []rune {
	lines := strings.SplitAfter(text, "\n")

	result := make([]rune, len(lines))
	for i, line := range lines {
		lineValue, ok := lineToIndex[line]

		if !ok {
			lineValue = len(lineToIndex)
			lineToIndex[line] = lineValue
		}

		result[i] = rune(lineValue)
	}
	return result
}
