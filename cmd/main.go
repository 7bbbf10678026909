package main

import (
	"context"
	"os"

	"simplenet/cmd/connect"
	"simplenet/cmd/listen"
	"simplenet/cmd/version"
	"simplenet/pkg/log"

	"github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "simplenet",
		Usage: "line-oriented netcat on plain BSD sockets",
		Commands: []*cli.Command{
			connect.GetCommand(),
			listen.GetCommand(),
			version.GetCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.ErrorMsg("%s\n", err)
		os.Exit(1)
	}
}
