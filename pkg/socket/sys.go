package socket

import (
	"fmt"
	"net/netip"

	"golang.org/x/sys/unix"
)

// The helpers below restart system calls interrupted by a signal (EINTR).
// Other errors are returned as is.

func recv(fd int, p []byte, flags int) (int, error) {
	for {
		n, _, err := unix.Recvfrom(fd, p, flags)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	}
}

func send(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Write(fd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		return n, nil
	}
}

func accept(fd int) (int, unix.Sockaddr, error) {
	for {
		nfd, sa, err := unix.Accept(fd)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return -1, nil, err
		}
		unix.CloseOnExec(nfd)
		return nfd, sa, nil
	}
}

// openSocket creates a descriptor for the candidate.
func openSocket(c Candidate) (int, error) {
	fd, err := unix.Socket(c.Family, c.Type, c.Protocol)
	if err != nil {
		return -1, fmt.Errorf("creating socket: %w", err)
	}
	unix.CloseOnExec(fd)
	return fd, nil
}

// connectFD connects fd to sa. An interrupted connect keeps going in the
// kernel, so it is finished by waiting for writability and reading SO_ERROR.
func connectFD(fd int, sa unix.Sockaddr) error {
	switch err := unix.Connect(fd, sa); err {
	case nil, unix.EISCONN:
		return nil
	case unix.EINTR, unix.EINPROGRESS, unix.EALREADY:
		return awaitConnect(fd)
	default:
		return err
	}
}

func awaitConnect(fd int) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLOUT}}
	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return err
		}
		break
	}

	soErr, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return err
	}
	if soErr != 0 {
		return unix.Errno(soErr)
	}
	return nil
}

// listenFD makes fd a listening socket bound to sa.
func listenFD(fd int, sa unix.Sockaddr, backlog int) error {
	// lets a restarted server bind while old connections sit in TIME_WAIT
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return fmt.Errorf("configuring socket: %w", err)
	}

	if err := unix.Bind(fd, sa); err != nil {
		return fmt.Errorf("binding to socket: %w", err)
	}

	if err := unix.Listen(fd, backlog); err != nil {
		return fmt.Errorf("listening for incoming connections: %w", err)
	}
	return nil
}

func addrPortOf(sa unix.Sockaddr) (netip.AddrPort, bool) {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return netip.AddrPortFrom(netip.AddrFrom4(a.Addr), uint16(a.Port)), true
	case *unix.SockaddrInet6:
		return netip.AddrPortFrom(netip.AddrFrom16(a.Addr), uint16(a.Port)), true
	default:
		return netip.AddrPort{}, false
	}
}

func sockaddrOf(addr netip.Addr, port uint16) (unix.Sockaddr, int) {
	if addr.Is4() {
		return &unix.SockaddrInet4{Port: int(port), Addr: addr.As4()}, unix.AF_INET
	}
	return &unix.SockaddrInet6{Port: int(port), Addr: addr.As16()}, unix.AF_INET6
}
