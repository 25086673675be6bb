package main

import (
	"github.com/protheus-tools/revisor/lib/server"
)

type ServeCmd struct {
	Port uint `default:"2431" help:"Port to listen on."`
}

func (c *ServeCmd) Run(ctx *context) error {
	return server.Run(ctx.ws.Console(), ctx.ws.Storage(), &server.Options{
		Port: c.Port,
	})
}
