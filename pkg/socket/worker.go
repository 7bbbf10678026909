package socket

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"runtime"
	"strings"

	"simplenet/pkg/config"

	"golang.org/x/sys/unix"
)

// Worker is the server side of one accepted connection.
type Worker struct {
	Socket
	peer       unix.Sockaddr
	lookupAddr config.LookupAddrFunc
}

func newWorker(fd int, peer unix.Sockaddr, o options) *Worker {
	w := &Worker{
		peer:       peer,
		lookupAddr: config.GetLookupAddrFunc(o.deps),
	}
	w.logger = o.logger
	w.adopt(fd, StateConnected)
	runtime.SetFinalizer(w, (*Worker).release)
	return w
}

// RemoteAddr returns the peer address captured by Accept. It is the zero
// value if the address family is not IPv4 or IPv6.
func (w *Worker) RemoteAddr() netip.AddrPort {
	ap, _ := addrPortOf(w.peer)
	return ap
}

// ClientIP returns the peer's IP address in its textual form, dotted
// decimal for IPv4.
func (w *Worker) ClientIP() (string, error) {
	ap, ok := addrPortOf(w.peer)
	if !ok {
		return "", newError("client ip", KindPeer, errors.New("could not get client IP"))
	}
	return ap.Addr().Unmap().String(), nil
}

// ClientHostname reverse resolves the peer address. The lookup runs on
// every call and blocks until ctx is done or the resolver answers.
func (w *Worker) ClientHostname(ctx context.Context) (string, error) {
	ip, err := w.ClientIP()
	if err != nil {
		return "", err
	}

	names, err := w.lookupAddr(ctx, ip)
	if err != nil {
		return "", newError("client hostname", KindPeer, fmt.Errorf("could not get client hostname: %w", err))
	}
	if len(names) == 0 {
		return "", newError("client hostname", KindPeer, fmt.Errorf("could not get client hostname: no name for %s", ip))
	}

	return strings.TrimSuffix(names[0], "."), nil
}
