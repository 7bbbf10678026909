// Package version implements the version command.
package version

import (
	"context"
	"fmt"
	"runtime"

	"github.com/urfave/cli/v3"
)

// Version is set at build time via -ldflags "-X simplenet/cmd/version.Version=...".
var Version = "unknown"

// String describes the build: version, Go release and platform.
func String() string {
	return fmt.Sprintf("simplenet %s (%s, %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// GetCommand returns the version command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the simplenet version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println(String())
			return nil
		},
		Flags: []cli.Flag{},
	}
}
