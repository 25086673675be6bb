package main

import (
	"github.com/alecthomas/kong"

	"github.com/protheus-tools/revisor/lib/workspace"
)

var cli struct {
	Workspace string `short:"w" help:"Workspace to store data. Default is ./.revisor or ~/.revisor if that does not exist." type:"path"`

	Review ReviewCmd `cmd:"" help:"Review the committed changes of a repository against the comparison branch."`
	Serve  ServeCmd  `cmd:"" help:"Serve stored review runs as JSON."`

	Rules struct {
		List   RulesListCmd   `cmd:"" help:"List the configured rules."`
		Import RulesImportCmd `cmd:"" help:"Replace the rule set with the rules from a JSON file."`
	} `cmd:""`

	Runs struct {
		List RunsListCmd `cmd:"" help:"List stored review runs."`
		Show RunsShowCmd `cmd:"" help:"Show one review run in detail."`
	} `cmd:""`

	Config struct {
		Set ConfigSetCmd `cmd:"" help:"Set configuration parameters."`
	} `cmd:""`
}

type context struct {
	ws *workspace.Workspace
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	ws, err := workspace.NewWorkspace(cli.Workspace)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&context{
		ws: ws,
	})
	ctx.FatalIfErrorf(err)
}
