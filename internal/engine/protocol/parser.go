package protocol

import (
	"Go2FlowTag/internal/errors"
	"Go2FlowTag/internal/model"
	"strconv"
	"strings"

	"github.com/google/gopacket/layers"
)

// Protocol names produced by Name.
const (
	TCP   = "tcp"
	UDP   = "udp"
	Other = "other"
)

// Field positions in a whitespace-separated flow log record (VPC flow log v2 layout).
const (
	DstPortField  = 5
	ProtocolField = 7

	// MinFields is the shortest record from which both fields can be read.
	// The historical check only required 7 tokens, which let a 7-token line
	// reach an out-of-range protocol index; such lines are now malformed.
	MinFields = ProtocolField + 1
)

var (
	tcpNumber = strconv.Itoa(int(layers.IPProtocolTCP))
	udpNumber = strconv.Itoa(int(layers.IPProtocolUDP))
)

// Name maps an IANA protocol number, as written in a flow record, to "tcp",
// "udp" or "other". The comparison is on the literal token, so "06" is "other".
func Name(number string) string {
	switch number {
	case tcpNumber:
		return TCP
	case udpNumber:
		return UDP
	default:
		return Other
	}
}

// ParseLine extracts the destination port and protocol name from a flow log
// line. ok is false for empty or whitespace-only lines, which callers ignore
// silently. Lines with too few fields yield a KindMalformed error.
func ParseLine(line string) (key model.PortProtocol, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.PortProtocol{}, false, nil
	}

	fields := strings.Fields(line)
	if len(fields) < MinFields {
		return model.PortProtocol{}, true, errors.Errorf(errors.KindMalformed,
			"invalid flow log line, %d fields (need %d): %s", len(fields), MinFields, line)
	}

	return model.PortProtocol{
		Port:     fields[DstPortField],
		Protocol: Name(fields[ProtocolField]),
	}, true, nil
}
