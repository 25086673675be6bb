package main

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/protheus-tools/revisor/lib/model"
)

type RunsListCmd struct {
}

func (c *RunsListCmd) Run(ctx *context) error {
	runs, err := ctx.ws.Storage().LoadRuns()
	if err != nil {
		return err
	}

	for _, run := range runs {
		fmt.Printf("%-12v %-8v %-30v vs %-20v %v\n",
			run.ID, run.Status, run.Branch, run.CompareBranch, humanize.Time(run.Date))
	}

	return nil
}

type RunsShowCmd struct {
	ID string `arg:"" help:"ID of the review run."`
}

func (c *RunsShowCmd) Run(ctx *context) error {
	run, err := ctx.ws.Storage().LoadRun(model.UUID(c.ID))
	if err != nil {
		return err
	}

	fmt.Printf("Run %v: %v vs %v, %v (%v ahead, %v behind)\n",
		run.ID, run.Branch, run.CompareBranch, run.Status, run.Ahead, run.Behind)

	for _, v := range run.Violations {
		fmt.Printf("\n[%v] %v %v\n%v\n", v.Severity, v.RuleID, v.FilePath, v.Description)

		for _, occ := range v.Occurrences {
			switch {
			case occ.LineNumber == nil:
				fmt.Printf("  %v\n", occ.Text)
			case occ.IsLegacy:
				fmt.Printf("  line %v: %v (%v)\n", *occ.LineNumber, occ.Text, occ.LegacyNote)
			default:
				fmt.Printf("  line %v: %v\n", *occ.LineNumber, occ.Text)
			}

			if occ.Annotation != "" {
				fmt.Printf("    %v\n", occ.Annotation)
			}
		}
	}

	return nil
}
