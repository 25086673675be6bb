package main

type ConfigSetCmd struct {
	Config string `arg:"" help:"Configuration parameter to change (ex: review.compare-branch)."`
	Value  string `arg:"" help:"New value."`
}

func (c *ConfigSetCmd) Run(ctx *context) error {
	err := ctx.ws.SetConfig(c.Config, c.Value)
	if err != nil {
		return err
	}

	ctx.ws.Console().Printf("Config updated\n")
	return nil
}
