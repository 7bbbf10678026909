package listen

import (
	"context"
	"strings"
	"testing"
	"time"

	"simplenet/pkg/config"

	"github.com/urfave/cli/v3"
)

// parse runs the listen command on args with an action that only parses.
func parse(t *testing.T, args ...string) (*config.Shared, *config.Listen, error) {
	t.Helper()

	var (
		cfg  *config.Shared
		lCfg *config.Listen
	)
	cmd := GetCommand()
	cmd.Action = func(ctx context.Context, cmd *cli.Command) error {
		var err error
		cfg, lCfg, err = parseConfig(cmd)
		return err
	}

	err := cmd.Run(context.Background(), append([]string{"listen"}, args...))
	return cfg, lCfg, err
}

func TestGetCommand(t *testing.T) {
	t.Parallel()

	cmd := GetCommand()
	if cmd.Name != "listen" {
		t.Errorf("command name = %q; want listen", cmd.Name)
	}
	if cmd.Action == nil {
		t.Error("command action should not be nil")
	}
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, lCfg, err := parse(t, "-g", "hello there", "-e", "-1", "-w", "3", "--accept-rate", "2.5", "--slot-timeout", "1500ms", "tcp://*:1234")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}

	if cfg.Protocol != config.ProtoTCP || cfg.Host != "" || cfg.Port != 1234 {
		t.Errorf("endpoint = %s %q %d", cfg.Protocol, cfg.Host, cfg.Port)
	}
	if cfg.Verbose {
		t.Error("verbose set without -v")
	}
	want := config.Listen{Greeting: "hello there", Echo: true, Once: true, MaxWorkers: 3, AcceptRate: 2.5, SlotTimeout: 1500 * time.Millisecond}
	if *lCfg != want {
		t.Errorf("listen config = %+v; want %+v", *lCfg, want)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	t.Parallel()

	_, lCfg, err := parse(t, "tcp://localhost:1234")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if lCfg.MaxWorkers != 64 || lCfg.AcceptRate != 0 || lCfg.SlotTimeout != 0 || lCfg.Echo || lCfg.Once || lCfg.Greeting != "" {
		t.Errorf("listen config = %+v", *lCfg)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no argument", nil, "exactly one argument"},
		{"bad transport", []string{"localhost:1234"}, "parsing transport"},
		{"udp", []string{"udp://*:53"}, "only tcp can listen"},
		{"no workers", []string{"-w", "0", "tcp://*:1234"}, "exiting"},
		{"negative rate", []string{"--accept-rate=-1", "tcp://*:1234"}, "exiting"},
		{"negative slot timeout", []string{"--slot-timeout=-1s", "tcp://*:1234"}, "exiting"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := parse(t, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("parse error = %v; want it to contain %q", err, tc.want)
			}
		})
	}
}
