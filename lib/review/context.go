package review

import (
	"github.com/protheus-tools/revisor/lib/model"
)

const legacyNote = "Legacy code (already present in the comparison branch)"

// AnnotateContext attaches to each line-level occurrence the diff lines of
// its file whose number falls within radius of the occurrence, in original
// diff order. File-level occurrences get no context. Legacy occurrences
// get the fixed note naming the baseline as the source of the match.
func AnnotateContext(files map[string]*model.FileChangeSet, violations []*model.Violation, radius int) {
	for _, v := range violations {
		changes := files[v.FilePath]

		for _, occ := range v.Occurrences {
			if occ.IsLegacy {
				occ.LegacyNote = legacyNote
			}

			if occ.LineNumber == nil || changes == nil {
				continue
			}

			for _, line := range changes.All {
				if abs(line.Number-*occ.LineNumber) <= radius {
					occ.Context = append(occ.Context, line)
				}
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
