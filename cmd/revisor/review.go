package main

import (
	"encoding/json"
	"fmt"

	"github.com/protheus-tools/revisor/lib/model"
	"github.com/protheus-tools/revisor/lib/workspace"
)

type ReviewCmd struct {
	Path             string   `arg:"" help:"Path of the git repository to review." type:"existingpath"`
	CompareBranch    string   `help:"Branch to compare against. Default comes from the workspace config (origin/master)."`
	Fetch            bool     `default:"true" negatable:"" help:"Fetch the comparison remote before reviewing."`
	Include          []string `help:"Only review files matching these glob patterns."`
	Exclude          []string `help:"Skip files matching these glob patterns."`
	ContextRadius    int      `default:"3" help:"Diff lines of context attached to each occurrence."`
	DocLookback      int      `default:"40" help:"How many lines above a declaration to search for a protheus.doc block."`
	MinIdentifierLen int      `default:"11" help:"Minimum length for the long identifier rule."`
	JSON             bool     `help:"Print the run result as JSON."`
}

func (c *ReviewCmd) Run(ctx *context) error {
	run, err := ctx.ws.Review(&workspace.ReviewOptions{
		Path:             c.Path,
		CompareBranch:    c.CompareBranch,
		Fetch:            c.Fetch,
		Include:          c.Include,
		Exclude:          c.Exclude,
		ContextRadius:    c.ContextRadius,
		DocLookback:      c.DocLookback,
		MinIdentifierLen: c.MinIdentifierLen,
		ShowProgress:     !c.JSON,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		return printRunJSON(run)
	}

	return nil
}

type runResult struct {
	ID             model.UUID         `json:"id"`
	Status         model.ReviewStatus `json:"status"`
	Branch         string             `json:"branch"`
	CompareBranch  string             `json:"compare_branch"`
	Ahead          int                `json:"ahead_commits"`
	Behind         int                `json:"behind_commits"`
	ChangedFiles   int                `json:"changed_files"`
	Violations     int                `json:"violations"`
	MergeConflicts int                `json:"merge_conflicts"`
	LegacyCount    int                `json:"legacy_code_count"`
	Details        []*model.Violation `json:"details"`
}

func printRunJSON(run *model.ReviewRun) error {
	summary := run.Summary()

	result, err := json.Marshal(&runResult{
		ID:             run.ID,
		Status:         run.Status,
		Branch:         run.Branch,
		CompareBranch:  run.CompareBranch,
		Ahead:          run.Ahead,
		Behind:         run.Behind,
		ChangedFiles:   len(run.ChangedFiles),
		Violations:     summary.Violations,
		MergeConflicts: summary.MergeConflicts,
		LegacyCount:    summary.LegacyTotal,
		Details:        run.Violations,
	})
	if err != nil {
		return err
	}

	fmt.Println(string(result))
	return nil
}
