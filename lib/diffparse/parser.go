// Package diffparse converts unified diff text into per-file change sets
// with exact line numbering. Every downstream consumer trusts these
// numbers, so the two counters must never drift, across hunks or files.
package diffparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/protheus-tools/revisor/lib/model"
)

var hunkRE = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse runs a small state machine over the diff lines. A "diff --git"
// line resets the per-file state, "+++ b/" opens a file, a hunk header
// resets the old/new counters. Content lines before a valid hunk header
// are a malformed diff and abort parsing.
func Parse(diffText string) (map[string]*model.FileChangeSet, error) {
	result := map[string]*model.FileChangeSet{}

	var current *model.FileChangeSet
	oldLine, newLine := -1, -1

	for _, raw := range strings.Split(strings.TrimSuffix(diffText, "\n"), "\n") {
		switch {
		case strings.HasPrefix(raw, "diff --git "):
			current = nil
			oldLine, newLine = -1, -1
			continue

		case strings.HasPrefix(raw, "+++ b/"):
			path := strings.TrimSpace(strings.TrimPrefix(raw, "+++ b/"))
			current = model.NewFileChangeSet(path)
			result[path] = current
			continue
		}

		if m := hunkRE.FindStringSubmatch(raw); m != nil {
			oldLine, _ = strconv.Atoi(m[1])
			newLine, _ = strconv.Atoi(m[3])
			continue
		}

		if current == nil {
			continue
		}

		if strings.HasPrefix(raw, "--- ") ||
			strings.HasPrefix(raw, "index ") ||
			strings.HasPrefix(raw, "new file") ||
			strings.HasPrefix(raw, "deleted file") ||
			strings.HasPrefix(raw, `\ No newline at end of file`) {
			continue
		}

		if oldLine < 0 || newLine < 0 {
			if raw == "" {
				continue
			}
			return nil, errors.Errorf("malformed diff: content for %v before a valid hunk header: %q", current.Path, raw)
		}

		sign, text := "", ""
		if raw != "" {
			sign = raw[:1]
			text = raw[1:]
		}

		switch sign {
		case "+":
			current.AppendAdded(newLine, text)
			newLine++
		case "-":
			current.AppendRemoved(oldLine, text)
			oldLine++
		default:
			// A bare empty line is a context line whose leading space was
			// trimmed.
			current.AppendContext(newLine, text)
			oldLine++
			newLine++
		}
	}

	return result, nil
}
