// Package format renders endpoints for log lines and CLI output.
package format

import (
	"fmt"
	"strings"
)

// Addr joins host and port, bracketing IPv6 literals.
func Addr(host string, port int) string {
	if strings.ContainsAny(host, ":") { // IPv6
		return fmt.Sprintf("[%s]:%d", host, port)
	} else { // IPv4
		return fmt.Sprintf("%s:%d", host, port)
	}
}

// Transport renders an endpoint the way the CLI accepts it,
// e.g. tcp://localhost:1234. An empty host is shown as "*".
func Transport(proto, host string, port int) string {
	if host == "" {
		host = "*"
	}
	return proto + "://" + Addr(host, port)
}

// Peer describes an accepted peer by IP and, when known, host name.
func Peer(ip, hostname string) string {
	if hostname == "" || hostname == ip {
		return ip
	}
	return fmt.Sprintf("%s (%s)", hostname, ip)
}
