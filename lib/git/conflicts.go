package git

import (
	"sort"

	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/protheus-tools/revisor/lib/linediff"
)

// ConflictingFiles simulates merging head into the comparison branch
// without touching the working tree: files edited on both sides since the
// merge base conflict when their changed line ranges overlap, or when one
// side deleted a file the other modified.
func (c *Client) ConflictingFiles(compare, head string) ([]string, error) {
	compareCommit, err := c.commit(compare)
	if err != nil {
		return nil, err
	}

	headCommit, err := c.commit(head)
	if err != nil {
		return nil, err
	}

	mb, err := c.mergeBase(compareCommit, headCommit)
	if err != nil {
		return nil, err
	}

	// Compare branch fully merged already: nothing to conflict with.
	if mb.Hash == compareCommit.Hash {
		return nil, nil
	}

	headChanges, err := commitChanges(mb, headCommit)
	if err != nil {
		return nil, err
	}

	compareChanges, err := commitChanges(mb, compareCommit)
	if err != nil {
		return nil, err
	}

	changedOnCompare := map[string]bool{}
	for _, change := range compareChanges {
		changedOnCompare[changePath(change)] = true
	}

	var result []string
	for _, change := range headChanges {
		path := changePath(change)
		if !changedOnCompare[path] {
			continue
		}

		conflicts, err := c.changesConflict(mb, headCommit, compareCommit, path)
		if err != nil {
			return nil, err
		}

		if conflicts {
			result = append(result, path)
		}
	}

	sort.Strings(result)
	return result, nil
}

func (c *Client) changesConflict(base, head, compare *object.Commit, path string) (bool, error) {
	baseContent, err := fileContent(base, path)
	if err != nil {
		return false, err
	}

	headContent, err := fileContent(head, path)
	if err != nil {
		return false, err
	}

	compareContent, err := fileContent(compare, path)
	if err != nil {
		return false, err
	}

	// Deleted on one side, edited on the other.
	if headContent == "" || compareContent == "" {
		return headContent != compareContent, nil
	}

	headRanges := linediff.ChangedRanges(linediff.Do(baseContent, headContent))
	compareRanges := linediff.ChangedRanges(linediff.Do(baseContent, compareContent))

	return linediff.Overlap(headRanges, compareRanges), nil
}
