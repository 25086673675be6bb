// Package git is the only place that talks to the repository. It supplies
// the primitives the review core consumes: diff text between two
// revisions, file content at a revision, changed file lists and the
// merge-conflict scan.
package git

import (
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"

	"github.com/protheus-tools/revisor/lib/consoles"
	"github.com/protheus-tools/revisor/lib/utils"
)

type Client struct {
	console consoles.Console
	repo    *gogit.Repository
	rootDir string
}

func Open(console consoles.Console, dir string) (*Client, error) {
	rootDir, err := utils.PathAbs(dir)
	if err != nil {
		return nil, err
	}

	repo, err := gogit.PlainOpen(rootDir)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening git repository at %v", rootDir)
	}

	return &Client{
		console: console,
		repo:    repo,
		rootDir: rootDir,
	}, nil
}

func (c *Client) RootDir() string {
	return c.rootDir
}

func (c *Client) CurrentBranch() (string, error) {
	head, err := c.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "error reading HEAD")
	}

	return head.Name().Short(), nil
}

// Fetch updates the remote refs. Already-up-to-date is not an error.
func (c *Client) Fetch(remote string) error {
	err := c.repo.Fetch(&gogit.FetchOptions{RemoteName: remote})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return errors.Wrapf(err, "error fetching %v", remote)
	}

	return nil
}

func (c *Client) commit(revision string) (*object.Commit, error) {
	hash, err := c.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, errors.Wrapf(err, "error resolving revision %v", revision)
	}

	result, err := c.repo.CommitObject(*hash)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading commit %v", hash)
	}

	return result, nil
}

func (c *Client) mergeBase(base, head *object.Commit) (*object.Commit, error) {
	bases, err := base.MergeBase(head)
	if err != nil {
		return nil, errors.Wrapf(err, "error computing merge base of %v and %v", base.Hash, head.Hash)
	}
	if len(bases) == 0 {
		return nil, errors.Errorf("no common ancestor between %v and %v", base.Hash, head.Hash)
	}

	return bases[0], nil
}

// AheadBehind counts the commits exclusive to each side of base...head,
// like rev-list --left-right --count.
func (c *Client) AheadBehind(base, head string) (int, int, error) {
	baseCommit, err := c.commit(base)
	if err != nil {
		return 0, 0, err
	}

	headCommit, err := c.commit(head)
	if err != nil {
		return 0, 0, err
	}

	mb, err := c.mergeBase(baseCommit, headCommit)
	if err != nil {
		return 0, 0, err
	}

	ahead, err := countReachable(headCommit, mb.Hash)
	if err != nil {
		return 0, 0, err
	}

	behind, err := countReachable(baseCommit, mb.Hash)
	if err != nil {
		return 0, 0, err
	}

	return ahead, behind, nil
}

func countReachable(from *object.Commit, stop plumbing.Hash) (int, error) {
	iter := object.NewCommitPreorderIter(from, nil, []plumbing.Hash{stop})

	result := 0
	err := iter.ForEach(func(commit *object.Commit) error {
		if commit.Hash != stop {
			result++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return result, nil
}

// ChangedFiles lists the paths changed between the merge base of the two
// revisions and head, mirroring git diff --name-only base...head.
func (c *Client) ChangedFiles(base, head string) ([]string, error) {
	changes, err := c.treeChanges(base, head)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, change := range changes {
		result = append(result, changePath(change))
	}

	return result, nil
}

// DiffText builds the unified diff text between the merge base and head,
// restricted to the given paths.
func (c *Client) DiffText(base, head string, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", nil
	}

	wanted := map[string]bool{}
	for _, p := range paths {
		wanted[p] = true
	}

	changes, err := c.treeChanges(base, head)
	if err != nil {
		return "", err
	}

	sb := strings.Builder{}
	for _, change := range changes {
		if !wanted[changePath(change)] {
			continue
		}

		patch, err := change.Patch()
		if err != nil {
			return "", errors.Wrapf(err, "error computing patch for %v", changePath(change))
		}

		sb.WriteString(decodeText([]byte(patch.String())))
	}

	return sb.String(), nil
}

// FileContentAt returns the file content at a revision, or "" when the
// file does not exist there.
func (c *Client) FileContentAt(revision, path string) (string, error) {
	commit, err := c.commit(revision)
	if err != nil {
		return "", err
	}

	return fileContent(commit, path)
}

func fileContent(commit *object.Commit, path string) (string, error) {
	file, err := commit.File(path)
	if err == object.ErrFileNotFound {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "error reading %v at %v", path, commit.Hash)
	}

	contents, err := file.Contents()
	if err != nil {
		return "", errors.Wrapf(err, "error reading %v at %v", path, commit.Hash)
	}

	return decodeText([]byte(contents)), nil
}

func (c *Client) treeChanges(base, head string) (object.Changes, error) {
	baseCommit, err := c.commit(base)
	if err != nil {
		return nil, err
	}

	headCommit, err := c.commit(head)
	if err != nil {
		return nil, err
	}

	mb, err := c.mergeBase(baseCommit, headCommit)
	if err != nil {
		return nil, err
	}

	return commitChanges(mb, headCommit)
}

func commitChanges(from, to *object.Commit) (object.Changes, error) {
	fromTree, err := from.Tree()
	if err != nil {
		return nil, err
	}

	toTree, err := to.Tree()
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTree(fromTree, toTree)
	if err != nil {
		return nil, errors.Wrapf(err, "error diffing %v and %v", from.Hash, to.Hash)
	}

	return changes, nil
}

func changePath(change *object.Change) string {
	if change.To.Name != "" {
		return change.To.Name
	}
	return change.From.Name
}
