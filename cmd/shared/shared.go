// Package shared provides common CLI flag definitions and utility functions
// used across simplenet's command-line interface.
package shared

import (
	"strings"

	"github.com/urfave/cli/v3"
)

const categoryCommon = "common"

// VerboseFlag is the name of the flag to enable verbose logging.
const VerboseFlag = "verbose"

// LogFileFlag is the name of the flag to specify a transcript file.
const LogFileFlag = "log"

// GetBaseDescription returns the base description text for transport
// specifications used in CLI commands.
func GetBaseDescription() string {
	return strings.Join([]string{
		"Specify transport like this: tcp://127.0.0.1:123 (supports tcp|udp)",
		"You can omit the host when listening to bind to all interfaces.",
	}, "\n")
}

// GetArgsUsage returns the arguments usage string for CLI commands.
func GetArgsUsage() string {
	return strings.Join([]string{
		"transport",
	}, " ")
}

// GetCommonFlags returns the CLI flags used by both connect and listen.
func GetCommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:     VerboseFlag,
			Aliases:  []string{"v"},
			Usage:    "Verbose logging",
			Category: categoryCommon,
			Value:    false,
			Required: false,
		},
		&cli.StringFlag{
			Name:     LogFileFlag,
			Aliases:  []string{"l"},
			Usage:    "Append a transcript of all lines sent and received to this file",
			Category: categoryCommon,
			Value:    "",
			Required: false,
		},
	}
}

const categoryConnect = "connect"

// SendFlag is the name of the flag to send lines right after connecting.
const SendFlag = "send"

// ReadFlag is the name of the flag to limit how many lines are printed.
const ReadFlag = "read"

// GetConnectFlags returns the CLI flags specific to connect mode.
func GetConnectFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:     SendFlag,
			Aliases:  []string{"s"},
			Usage:    "Line to send after connecting, repeat for more lines. Without it stdin is sent line by line",
			Category: categoryConnect,
			Value:    []string{},
			Required: false,
		},
		&cli.IntFlag{
			Name:     ReadFlag,
			Aliases:  []string{"r"},
			Usage:    "Number of lines to print after sending, 0 reads until the peer closes",
			Category: categoryConnect,
			Value:    0,
			Required: false,
		},
	}
}

const categoryListen = "listen"

// GreetingFlag is the name of the flag to greet every accepted peer.
const GreetingFlag = "greeting"

// EchoFlag is the name of the flag to echo every received line.
const EchoFlag = "echo"

// OnceFlag is the name of the flag to stop after the first peer.
const OnceFlag = "once"

// MaxWorkersFlag is the name of the flag to limit concurrent peers.
const MaxWorkersFlag = "max-workers"

// AcceptRateFlag is the name of the flag to throttle accepted connections.
const AcceptRateFlag = "accept-rate"

// SlotTimeoutFlag is the name of the flag limiting how long a peer waits for
// a free worker.
const SlotTimeoutFlag = "slot-timeout"

// GetListenFlags returns the CLI flags specific to listen mode.
func GetListenFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     GreetingFlag,
			Aliases:  []string{"g"},
			Usage:    "Line sent to every peer right after it connected",
			Category: categoryListen,
			Value:    "",
			Required: false,
		},
		&cli.BoolFlag{
			Name:     EchoFlag,
			Aliases:  []string{"e"},
			Usage:    "Send every received line back instead of printing it",
			Category: categoryListen,
			Value:    false,
			Required: false,
		},
		&cli.BoolFlag{
			Name:     OnceFlag,
			Aliases:  []string{"1"},
			Usage:    "Exit after the first peer disconnected",
			Category: categoryListen,
			Value:    false,
			Required: false,
		},
		&cli.IntFlag{
			Name:     MaxWorkersFlag,
			Aliases:  []string{"w"},
			Usage:    "Maximum number of peers served at the same time",
			Category: categoryListen,
			Value:    64,
			Required: false,
		},
		&cli.FloatFlag{
			Name:     AcceptRateFlag,
			Usage:    "Maximum number of connections accepted per second (0: unlimited)",
			Category: categoryListen,
			Value:    0,
			Required: false,
		},
		&cli.DurationFlag{
			Name:     SlotTimeoutFlag,
			Usage:    "Disconnect a peer that waited this long for a free worker (0: wait forever)",
			Category: categoryListen,
			Value:    0,
			Required: false,
		},
	}
}
