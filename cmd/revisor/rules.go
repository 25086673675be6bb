package main

import (
	"fmt"

	"github.com/protheus-tools/revisor/lib/rules"
)

type RulesListCmd struct {
}

func (c *RulesListCmd) Run(ctx *context) error {
	list, err := rules.Load(ctx.ws.Console(), ctx.ws.Storage())
	if err != nil {
		return err
	}

	for _, r := range list {
		fmt.Printf("%-18v %-8v %-6v %-7v %v\n", r.ID, r.Severity, r.Language, r.Target, r.Description)
	}

	return nil
}

type RulesImportCmd struct {
	Path string `arg:"" help:"JSON file with the rule definitions." type:"existingfile"`
}

func (c *RulesImportCmd) Run(ctx *context) error {
	_, err := rules.ImportFile(ctx.ws.Console(), ctx.ws.Storage(), c.Path)
	return err
}
