// Package connect implements the connect command, which connects to a
// remote endpoint and exchanges lines with it.
package connect

import (
	"context"
	"fmt"
	"strings"

	"simplenet/cmd/shared"
	"simplenet/pkg/config"
	"simplenet/pkg/entrypoint"
	"simplenet/pkg/log"

	"github.com/urfave/cli/v3"
)

// GetCommand returns the CLI command for connect mode.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "connect",
		Usage:       "Connect to a remote host",
		Description: shared.GetBaseDescription(),
		ArgsUsage:   shared.GetArgsUsage(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, cCfg, err := parseConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			shared.SetupSignalHandling(cancel, cfg.Logger)

			return entrypoint.Connect(ctx, cfg, cCfg)
		},
		Flags: getFlags(),
	}
}

func parseConfig(cmd *cli.Command) (*config.Shared, *config.Connect, error) {
	args := cmd.Args()
	if args.Len() != 1 {
		return nil, nil, fmt.Errorf("must provide exactly one argument, got %d (%s)", args.Len(), strings.Join(args.Slice(), ", "))
	}

	proto, host, port, err := shared.ParseTransport(args.Get(0))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing transport: %w", err)
	}
	if host == "" {
		return nil, nil, fmt.Errorf("parsing transport: %s: specify a host", args.Get(0))
	}

	verbose := cmd.Bool(shared.VerboseFlag)
	cfg := &config.Shared{
		Protocol: proto,
		Host:     host,
		Port:     port,
		Verbose:  verbose,
		LogFile:  cmd.String(shared.LogFileFlag),
		Logger:   log.NewLogger(verbose),
	}

	cCfg := &config.Connect{
		Send: cmd.StringSlice(shared.SendFlag),
		Read: int(cmd.Int(shared.ReadFlag)),
	}

	if errors := config.Validate(cfg, cCfg); len(errors) > 0 {
		log.ErrorMsg("Argument validation errors:\n")
		for _, err := range errors {
			log.ErrorMsg(" - %s\n", err)
		}
		return nil, nil, fmt.Errorf("exiting")
	}

	return cfg, cCfg, nil
}

func getFlags() []cli.Flag {
	flags := []cli.Flag{}

	flags = append(flags, shared.GetCommonFlags()...)
	flags = append(flags, shared.GetConnectFlags()...)

	return flags
}
