package workspace

import (
	"strings"

	"github.com/aquilax/truncate"
	"github.com/gertd/go-pluralize"
	"github.com/samber/lo"

	"github.com/protheus-tools/revisor/lib/advpl"
	"github.com/protheus-tools/revisor/lib/diffparse"
	"github.com/protheus-tools/revisor/lib/filters"
	"github.com/protheus-tools/revisor/lib/git"
	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/review"
	"github.com/protheus-tools/revisor/lib/rules"
	"github.com/protheus-tools/revisor/lib/utils"
)

type ReviewOptions struct {
	Path             string
	CompareBranch    string
	Fetch            bool
	Include          []string
	Exclude          []string
	ContextRadius    int
	DocLookback      int
	MinIdentifierLen int
	ShowProgress     bool
}

// Review runs the whole pipeline against one repository: refresh refs,
// scan for merge conflicts, diff against the comparison branch, evaluate
// the rule set with legacy suppression, annotate context and persist the
// run.
func (w *Workspace) Review(opts *ReviewOptions) (*model.ReviewRun, error) {
	if opts.ContextRadius == 0 {
		opts.ContextRadius = 3
	}

	compare := opts.CompareBranch
	if compare == "" {
		var err error
		compare, err = w.GetConfig(ConfigCompareBranch, DefaultCompareBranch)
		if err != nil {
			return nil, err
		}
	}

	gc, err := git.Open(w.console, opts.Path)
	if err != nil {
		return nil, err
	}

	branch, err := gc.CurrentBranch()
	if err != nil {
		return nil, err
	}

	w.console.Printf("Reviewing %v at %v against %v\n", branch, gc.RootDir(), compare)

	if opts.Fetch {
		remote, _, found := strings.Cut(compare, "/")
		if !found {
			remote = "origin"
		}

		w.console.Printf("Fetching %v...\n", remote)

		err = gc.Fetch(remote)
		if err != nil {
			w.console.Warnf("Fetch failed, continuing with the refs already present: %v\n", err)
		}
	}

	run := model.NewReviewRun(branch, compare)

	run.ConflictFiles, err = gc.ConflictingFiles(compare, "HEAD")
	if err != nil {
		w.console.Warnf("Could not check for merge conflicts: %v\n", err)
		run.ConflictFiles = nil
	}

	run.Ahead, run.Behind, err = gc.AheadBehind(compare, "HEAD")
	if err != nil {
		return nil, err
	}

	w.console.Printf("Commits ahead: %v, behind: %v\n", run.Ahead, run.Behind)

	if run.Ahead > 0 {
		err = w.evaluateChanges(gc, compare, run, opts)
		if err != nil {
			return nil, err
		}
	} else {
		w.console.Printf("No commits to review.\n")
	}

	run.Violations = append(review.ConflictViolations(run.ConflictFiles, compare), run.Violations...)

	// Rule violations are advisory and never refuse a review.
	run.Status = utils.IIf(len(run.ConflictFiles) > 0, model.StatusRefused, model.StatusOK)

	w.printSummary(run)

	err = w.storage.WriteRun(run)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// reviewFilters layers the user's include/exclude globs on top of the
// fixed extension filters: one for what counts as a project file, one for
// what is actually reviewed.
func reviewFilters(opts *ReviewOptions) (project, review filters.FileFilter, err error) {
	globs, err := filters.GlobFilter(opts.Include, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}

	project = filters.All(filters.ExtensionFilter(advpl.ProjectExtensions), globs)
	review = filters.All(filters.ExtensionFilter(advpl.ReviewExtensions), globs)
	return project, review, nil
}

func (w *Workspace) evaluateChanges(gc *git.Client, compare string, run *model.ReviewRun, opts *ReviewOptions) error {
	changed, err := gc.ChangedFiles(compare, "HEAD")
	if err != nil {
		return err
	}

	projectFilter, reviewFilter, err := reviewFilters(opts)
	if err != nil {
		return err
	}

	run.ChangedFiles = lo.Filter(changed, func(path string, _ int) bool {
		return projectFilter(path)
	})

	reviewFiles := lo.Filter(run.ChangedFiles, func(path string, _ int) bool {
		return reviewFilter(path)
	})

	w.console.Printf("Changed project files: %v (%v to review)\n", len(run.ChangedFiles), len(reviewFiles))

	ruleList, err := rules.Load(w.console, w.storage)
	if err != nil {
		return err
	}

	diffText, err := gc.DiffText(compare, "HEAD", reviewFiles)
	if err != nil {
		return err
	}

	parsed, err := diffparse.Parse(diffText)
	if err != nil {
		return err
	}

	engine := review.NewEngine(w.console, ruleList,
		func(path string) (string, error) {
			return gc.FileContentAt(compare, path)
		},
		&review.Options{
			DocLookback:      opts.DocLookback,
			MinIdentifierLen: opts.MinIdentifierLen,
			ShowProgress:     opts.ShowProgress,
		})

	run.Violations = engine.Evaluate(parsed)

	review.AnnotateContext(parsed, run.Violations, opts.ContextRadius)

	return nil
}

func (w *Workspace) printSummary(run *model.ReviewRun) {
	pl := pluralize.NewClient()
	summary := run.Summary()

	w.console.Printf("Found %v active %v and %v legacy %v\n",
		summary.Violations, pl.Pluralize("violation", summary.Violations, false),
		summary.LegacyTotal, pl.Pluralize("occurrence", summary.LegacyTotal, false))

	if len(run.ConflictFiles) > 0 {
		w.console.Warnf("Merge conflicts in %v %v - review REFUSED\n",
			len(run.ConflictFiles), pl.Pluralize("file", len(run.ConflictFiles), false))
	}

	for _, v := range run.RuleViolations() {
		w.console.Printf("  [%v] %v: %v\n", v.Severity, v.FilePath,
			truncate.Truncate(v.Description, 80, "...", truncate.PositionEnd))
	}
}
