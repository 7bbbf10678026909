package config

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"strings"
	"testing"
)

func TestGetLookupIPFunc(t *testing.T) {
	t.Parallel()

	if GetLookupIPFunc(nil) == nil {
		t.Fatal("GetLookupIPFunc(nil) returned nil")
	}

	called := false
	deps := &Dependencies{
		LookupIP: func(ctx context.Context, network, host string) ([]net.IP, error) {
			called = true
			return []net.IP{net.IPv4(10, 0, 0, 1)}, nil
		},
	}

	ips, err := GetLookupIPFunc(deps)(context.Background(), "ip4", "example")
	if err != nil || !called || len(ips) != 1 {
		t.Errorf("injected LookupIP not used: ips=%v err=%v called=%v", ips, err, called)
	}
}

func TestGetLookupAddrFunc(t *testing.T) {
	t.Parallel()

	if GetLookupAddrFunc(nil) == nil {
		t.Fatal("GetLookupAddrFunc(nil) returned nil")
	}

	deps := &Dependencies{
		LookupAddr: func(ctx context.Context, addr string) ([]string, error) {
			return []string{"peer.example."}, nil
		},
	}

	names, err := GetLookupAddrFunc(deps)(context.Background(), "10.0.0.1")
	if err != nil || len(names) != 1 || names[0] != "peer.example." {
		t.Errorf("injected LookupAddr not used: names=%v err=%v", names, err)
	}
}

func TestGetStdioFuncs(t *testing.T) {
	t.Parallel()

	if GetStdinFunc(nil)() != os.Stdin {
		t.Error("GetStdinFunc(nil) should return os.Stdin")
	}
	if GetStdoutFunc(nil)() != os.Stdout {
		t.Error("GetStdoutFunc(nil) should return os.Stdout")
	}

	in := strings.NewReader("hello")
	out := &bytes.Buffer{}
	deps := &Dependencies{
		Stdin:  func() io.Reader { return in },
		Stdout: func() io.Writer { return out },
	}
	if GetStdinFunc(deps)() != in {
		t.Error("GetStdinFunc() ignored injected stdin")
	}
	if GetStdoutFunc(deps)() != out {
		t.Error("GetStdoutFunc() ignored injected stdout")
	}
}
