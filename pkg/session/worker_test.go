package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"simplenet/pkg/log"
)

func TestResponder_Describe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		remote  fakeRemote
		want    string
	}{
		{"ip only when quiet", false, fakeRemote{ip: "10.0.0.1", hostname: "box.lan"}, "10.0.0.1"},
		{"hostname when verbose", true, fakeRemote{ip: "10.0.0.1", hostname: "box.lan"}, "box.lan (10.0.0.1)"},
		{"lookup failure", true, fakeRemote{ip: "10.0.0.1", hostErr: errors.New("no PTR")}, "10.0.0.1"},
		{"no ip", true, fakeRemote{ipErr: errors.New("bad family")}, "unknown peer"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := &Responder{Logger: log.NewLoggerTo(&bytes.Buffer{}, tc.verbose)}
			if got := r.Describe(context.Background(), tc.remote); got != tc.want {
				t.Errorf("Describe() = %q, want %q", got, tc.want)
			}
		})
	}
}

func serveAsync(r *Responder, p *Peer) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- r.Serve(context.Background(), fakeRemote{ip: "127.0.0.1"}, p)
	}()
	return done
}

func TestResponder_GreetAndEcho(t *testing.T) {
	t.Parallel()

	c, w := connectedPair(t)
	client := NewPeer(c, nil)

	var logs bytes.Buffer
	r := &Responder{Greeting: "welcome", Echo: true, Logger: log.NewLoggerTo(&logs, false)}
	done := serveAsync(r, NewPeer(w, nil))

	if got, err := client.ReadLine(); err != nil || got != "welcome" {
		t.Fatalf("greeting = %q, %v; want welcome", got, err)
	}

	for _, line := range []string{"foo", "", "bar"} {
		if _, err := client.WriteLine(line); err != nil {
			t.Fatalf("WriteLine() error = %v", err)
		}
		got, err := client.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		if got != line {
			t.Errorf("echo = %q, want %q", got, line)
		}
	}

	_ = client.CloseWrite()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after client closed")
	}

	if !strings.Contains(logs.String(), "New connection from 127.0.0.1") {
		t.Errorf("logs = %q, want connection message", logs.String())
	}
}

func TestResponder_PrintsLines(t *testing.T) {
	t.Parallel()

	c, w := connectedPair(t)
	client := NewPeer(c, nil)

	var out lineSink
	r := &Responder{Out: &out, Logger: log.NewLoggerTo(&bytes.Buffer{}, false)}
	done := serveAsync(r, NewPeer(w, nil))

	for _, line := range []string{"a", "b"} {
		if _, err := client.WriteLine(line); err != nil {
			t.Fatalf("WriteLine() error = %v", err)
		}
	}
	_ = client.CloseWrite()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after client closed")
	}

	if got := strings.Join(out.get(), ","); got != "a,b" {
		t.Errorf("printed %q, want a,b", got)
	}
}

func TestResponder_WithTranscript(t *testing.T) {
	t.Parallel()

	c, w := connectedPair(t)
	client := NewPeer(c, nil)

	path := t.TempDir() + "/transcript.log"
	ll, err := log.NewLoggedLines(w, path)
	if err != nil {
		t.Fatalf("NewLoggedLines() error = %v", err)
	}
	defer ll.Close()

	r := &Responder{Greeting: "hi", Echo: true, Logger: log.NewLoggerTo(&bytes.Buffer{}, false)}
	done := serveAsync(r, NewPeer(w, ll))

	if _, err := client.ReadLine(); err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	_, _ = client.WriteLine("ping")
	if _, err := client.ReadLine(); err != nil {
		t.Fatalf("ReadLine() error = %v", err)
	}
	_ = client.CloseWrite()
	<-done

	got, err := readFile(path)
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	want := "> hi\n< ping\n> ping\n"
	if got != want {
		t.Errorf("transcript = %q, want %q", got, want)
	}
}
