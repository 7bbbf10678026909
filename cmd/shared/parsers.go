package shared

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"simplenet/pkg/config"
)

var transportRe = regexp.MustCompile(`^(tcp|udp)://([^:\[\]]*):(\d+)$`)

// ParseTransport parses a transport string in the format "protocol://host:port"
// where protocol is tcp or udp. The host can be empty or "*" to bind to all
// interfaces. Sockets are IPv4 only, so IPv6 literals are rejected.
// Returns the protocol, host, port, and any parsing error.
func ParseTransport(s string) (proto config.Protocol, host string, port int, err error) {
	if strings.Contains(s, "[") {
		err = fmt.Errorf("parsing %s: IPv6 addresses are not supported, use an IPv4 address or a host name", s)
		return
	}

	matches := transportRe.FindStringSubmatch(s)

	if len(matches) != 4 {
		err = parsingError(s)
		return
	}

	switch matches[1] {
	case "tcp":
		proto = config.ProtoTCP
	case "udp":
		proto = config.ProtoUDP
	default:
		err = parsingError(s)
		return
	}
	host = matches[2]
	if host == "*" { // also counts as all interfaces
		host = ""
	}

	port, err = strconv.Atoi(matches[3])
	if err != nil || port < 1 || port > 65535 {
		err = parsingError(s)
		return
	}

	return
}

func parsingError(s string) error {
	return fmt.Errorf("parsing %s: format should be 'protocol://host:port', where protocol = tcp|udp", s)
}
