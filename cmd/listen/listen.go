// Package listen implements the listen command, which accepts peers and
// greets, echoes or prints their lines.
package listen

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

// GetCommand returns the CLI command for listen mode.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:        "listen",
		Usage:       "Listen for connections",
		Description: shared.GetBaseDescription(),
		ArgsUsage:   shared.GetArgsUsage(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, lCfg, err := parseConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(ctx)
			defer cancel()
			shared.SetupSignalHandling(cancel, cfg.Logger)

			return entrypoint.Listen(ctx, cfg, lCfg)
		},
		Flags: getFlags(),
	}
}

func parseConfig(cmd *cli.Command) (*config.Shared, *config.Listen, error) {
	args := cmd.Args()
	if args.Len() != 1 {
		return nil, nil, fmt.Errorf("must provide exactly one argument, got %d (%s)", args.Len(), strings.Join(args.Slice(), ", "))
	}

	proto, host, port, err := shared.ParseTransport(args.Get(0))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing transport: %w", err)
	}
	if proto != config.ProtoTCP {
		return nil, nil, fmt.Errorf("parsing transport: %s: only tcp can listen", args.Get(0))
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

	lCfg := &config.Listen{
		Greeting:    cmd.String(shared.GreetingFlag),
		Echo:        cmd.Bool(shared.EchoFlag),
		Once:        cmd.Bool(shared.OnceFlag),
		MaxWorkers:  int(cmd.Int(shared.MaxWorkersFlag)),
		AcceptRate:  cmd.Float(shared.AcceptRateFlag),
		SlotTimeout: cmd.Duration(shared.SlotTimeoutFlag),
	}

	if errors := config.Validate(cfg, lCfg); len(errors) > 0 {
		log.ErrorMsg("Argument validation errors:\n")
		for _, err := range errors {
			log.ErrorMsg(" - %s\n", err)
		}
		return nil, nil, fmt.Errorf("exiting")
	}

	return cfg, lCfg, nil
}

func getFlags() []cli.Flag {
	flags := []cli.Flag{}

	flags = append(flags, shared.GetCommonFlags()...)
	flags = append(flags, shared.GetListenFlags()...)

	return flags
}
